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

// Package managedclusters builds validated AKS managed cluster resources
// from declarative specifications.
package managedclusters

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v4"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"

	"github.com/azuretools/akstemplate/azure"
	"github.com/azuretools/akstemplate/azure/services/agentpools"
)

// ManagedClusterSpec contains properties to create a managed cluster.
type ManagedClusterSpec struct {
	// Name is the name of this AKS cluster. Required; preserved verbatim in
	// the output and used as the base for derived names.
	Name string

	// DNSPrefix allows the user to customize the dns prefix. When empty it is
	// derived from the cluster name.
	DNSPrefix string

	// Location is a string matching one of the canonical Azure region names.
	// Passed through to the resource when set.
	Location string

	// Tags is a set of tags to add to this cluster.
	Tags map[string]string

	// KubernetesVersion defines the desired Kubernetes version. When empty
	// the platform default applies.
	KubernetesVersion string

	// AgentPools are the worker pool specifications. When none are given a
	// single default pool is created.
	AgentPools []agentpools.AgentPoolSpec

	// Identity selects the cluster identity mode. The zero value fails
	// validation.
	Identity Identity

	// LinuxProfile configures the admin user and SSH keys for node VMs.
	LinuxProfile *LinuxProfile

	// NetworkProfile selects and configures the network plugin. A nil profile
	// leaves network configuration to platform defaults.
	NetworkProfile NetworkProfile

	// EnablePrivateCluster makes the API server reachable only via private
	// networking. Requires the Standard load balancer SKU.
	EnablePrivateCluster bool

	// AuthorizedIPRanges restricts API server access to the given CIDR
	// blocks. Order is preserved in the output.
	AuthorizedIPRanges []string
}

// LinuxProfile is the SSH configuration for the cluster's Linux node VMs.
type LinuxProfile struct {
	// AdminUsername is the admin username for the node VMs. Defaults to the
	// standard AKS user name.
	AdminUsername string

	// SSHPublicKeys are the public keys granted access to the node VMs.
	SSHPublicKeys []string
}

// ResolvedCluster is the validated, fully defaulted result of a Build call.
// It is constructed once per call and never mutated afterwards.
type ResolvedCluster struct {
	// Name is the resource name of the cluster.
	Name string

	// ManagedCluster is the lowered resource, ready for serialization.
	ManagedCluster armcontainerservice.ManagedCluster

	// GeneratedParameters are deployment parameter names the build
	// introduced, to be declared by the template assembler.
	GeneratedParameters []string
}

// Build resolves defaults, runs the sub-builders, validates the draft and
// assembles the final resource. On validation failure it returns the
// aggregated error list and no partial resource.
func (s *ManagedClusterSpec) Build(ctx context.Context) (*ResolvedCluster, error) {
	log := logr.FromContextOrDiscard(ctx)

	draft := clusterDraft{
		identity:                 s.Identity,
		effectiveLoadBalancerSKU: azure.LoadBalancerSKUBasic,
		enablePrivateCluster:     s.EnablePrivateCluster,
		authorizedIPRanges:       s.AuthorizedIPRanges,
	}
	if s.Name == "" {
		draft.buildErrors = append(draft.buildErrors, errors.Errorf("%s is required", field.NewPath("name")))
	}
	if s.NetworkProfile != nil {
		draft.effectiveLoadBalancerSKU = s.NetworkProfile.EffectiveLoadBalancerSKU()
	}

	pools := s.AgentPools
	if len(pools) == 0 {
		pools = []agentpools.AgentPoolSpec{{Name: azure.DefaultAgentPoolName, Count: azure.DefaultAgentPoolCount}}
		log.V(4).Info("no agent pools configured, using the default pool", "pool", azure.DefaultAgentPoolName)
	}
	poolProfiles := make([]*armcontainerservice.ManagedClusterAgentPoolProfile, 0, len(pools))
	for i := range pools {
		profile, err := pools[i].Parameters(ctx)
		if err != nil {
			draft.buildErrors = append(draft.buildErrors, errors.Wrap(err, field.NewPath("agentPools").Index(i).String()))
			continue
		}
		poolProfiles = append(poolProfiles, profile)
	}

	var networkProfile *armcontainerservice.NetworkProfile
	if s.NetworkProfile != nil {
		profile, err := s.NetworkProfile.Parameters(ctx)
		if err != nil {
			draft.buildErrors = append(draft.buildErrors, errors.Wrap(err, field.NewPath("networkProfile").String()))
		} else {
			networkProfile = profile
		}
	}

	if err := validate(draft); err != nil {
		return nil, err
	}

	dnsPrefix := s.DNSPrefix
	if dnsPrefix == "" {
		dnsPrefix = azure.GenerateDNSPrefix(s.Name)
	}

	identity := s.Identity.resolve(s.Name)

	managedCluster := armcontainerservice.ManagedCluster{
		Name:     ptr.To(s.Name),
		Identity: identity.identity,
		Tags:     azure.StringMapPtr(s.Tags),
		Properties: &armcontainerservice.ManagedClusterProperties{
			DNSPrefix:               ptr.To(dnsPrefix),
			EnableRBAC:              ptr.To(true),
			AgentPoolProfiles:       poolProfiles,
			ServicePrincipalProfile: identity.servicePrincipal,
			NetworkProfile:          networkProfile,
			APIServerAccessProfile: &armcontainerservice.ManagedClusterAPIServerAccessProfile{
				EnablePrivateCluster: ptr.To(s.EnablePrivateCluster),
				AuthorizedIPRanges:   azure.StringSlicePtr(s.AuthorizedIPRanges),
			},
		},
	}
	if s.Location != "" {
		managedCluster.Location = ptr.To(s.Location)
	}
	if s.KubernetesVersion != "" {
		managedCluster.Properties.KubernetesVersion = ptr.To(s.KubernetesVersion)
	}
	if s.LinuxProfile != nil {
		managedCluster.Properties.LinuxProfile = s.buildLinuxProfile()
	}

	log.V(4).Info("resolved managed cluster", "cluster", s.Name, "dnsPrefix", dnsPrefix,
		"agentPools", len(poolProfiles), "generatedParameters", identity.generatedParameters)

	return &ResolvedCluster{
		Name:                s.Name,
		ManagedCluster:      managedCluster,
		GeneratedParameters: identity.generatedParameters,
	}, nil
}

func (s *ManagedClusterSpec) buildLinuxProfile() *armcontainerservice.LinuxProfile {
	adminUsername := s.LinuxProfile.AdminUsername
	if adminUsername == "" {
		adminUsername = azure.DefaultAKSUserName
	}

	publicKeys := make([]*armcontainerservice.SSHPublicKey, 0, len(s.LinuxProfile.SSHPublicKeys))
	for _, key := range s.LinuxProfile.SSHPublicKeys {
		publicKeys = append(publicKeys, &armcontainerservice.SSHPublicKey{
			KeyData: ptr.To(key),
		})
	}

	return &armcontainerservice.LinuxProfile{
		AdminUsername: ptr.To(adminUsername),
		SSH: &armcontainerservice.SSHConfiguration{
			PublicKeys: publicKeys,
		},
	}
}
