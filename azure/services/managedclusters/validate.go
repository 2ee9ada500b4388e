/*
Copyright 2024 The akstemplate Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package managedclusters

import (
	"github.com/pkg/errors"
	kerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/azuretools/akstemplate/azure"
	"github.com/azuretools/akstemplate/util/cidr"
)

var (
	// ErrMissingServicePrincipal is returned when neither a managed identity
	// nor a service principal has been configured for the cluster.
	ErrMissingServicePrincipal = errors.New("no managed identity or service principal configured")

	// ErrPrivateClusterRequiresStandardLB is returned when a private cluster
	// is configured with a load balancer SKU other than Standard.
	ErrPrivateClusterRequiresStandardLB = errors.New("private cluster requires the Standard load balancer SKU")
)

// clusterDraft carries the pieces assembled by the sub-builders that the
// validator inspects, including any errors those builders surfaced.
type clusterDraft struct {
	identity                 Identity
	effectiveLoadBalancerSKU string
	enablePrivateCluster     bool
	authorizedIPRanges       []string
	buildErrors              []error
}

// validate runs every cross-field rule over the draft and aggregates the
// failures, so a caller sees all problems in one pass. A nil result means the
// draft lowers into a deployable resource.
func validate(draft clusterDraft) error {
	errs := append([]error{}, draft.buildErrors...)

	if !draft.identity.IsSet() {
		errs = append(errs, errors.Wrap(ErrMissingServicePrincipal, field.NewPath("identity").String()))
	}

	if draft.enablePrivateCluster && draft.effectiveLoadBalancerSKU != azure.LoadBalancerSKUStandard {
		errs = append(errs, errors.Wrapf(ErrPrivateClusterRequiresStandardLB,
			"%s is %q", field.NewPath("networkProfile", "loadBalancerSku"), draft.effectiveLoadBalancerSKU))
	}

	for i, ipRange := range draft.authorizedIPRanges {
		if _, err := cidr.Parse(ipRange); err != nil {
			errs = append(errs, errors.Wrap(err, field.NewPath("authorizedIPRanges").Index(i).String()))
		}
	}

	return kerrors.NewAggregate(errs)
}
