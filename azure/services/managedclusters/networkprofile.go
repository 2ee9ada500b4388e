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
	"context"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v4"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"k8s.io/utils/ptr"

	"github.com/azuretools/akstemplate/azure"
	"github.com/azuretools/akstemplate/util/cidr"
)

// dnsServiceIPOffset is the fixed offset of the in-cluster DNS service
// address inside the service CIDR, per the Kubernetes convention.
const dnsServiceIPOffset = 2

// NetworkProfile is the capability shared by all network profile variants.
// Validation only needs the effective load balancer SKU, so it is exposed
// uniformly here rather than by inspecting the concrete variant.
type NetworkProfile interface {
	// EffectiveLoadBalancerSKU returns the load balancer SKU the variant
	// resolves to after defaulting.
	EffectiveLoadBalancerSKU() string

	// Parameters lowers the variant into a container service network profile.
	Parameters(ctx context.Context) (*armcontainerservice.NetworkProfile, error)
}

// AzureCNIProfile configures the Azure CNI network plugin.
type AzureCNIProfile struct {
	// ServiceCIDR is the address block for IP addresses distributed to
	// services. When set, the DNS service IP is derived from it; when empty,
	// both stay unset and platform defaults apply downstream.
	ServiceCIDR string

	// LoadBalancerSKU for the cluster. Possible values are 'Standard' and
	// 'Basic'. Defaults to Standard.
	LoadBalancerSKU string
}

// EffectiveLoadBalancerSKU implements NetworkProfile.
func (p *AzureCNIProfile) EffectiveLoadBalancerSKU() string {
	if p.LoadBalancerSKU == "" {
		return azure.LoadBalancerSKUStandard
	}
	return p.LoadBalancerSKU
}

// Parameters implements NetworkProfile. The DNS service IP is always the
// third usable address of the service block.
func (p *AzureCNIProfile) Parameters(ctx context.Context) (*armcontainerservice.NetworkProfile, error) {
	log := logr.FromContextOrDiscard(ctx)

	profile := &armcontainerservice.NetworkProfile{
		NetworkPlugin:   ptr.To(armcontainerservice.NetworkPluginAzure),
		LoadBalancerSKU: loadBalancerSKU(p.EffectiveLoadBalancerSKU()),
	}

	if p.ServiceCIDR != "" {
		block, err := cidr.Parse(p.ServiceCIDR)
		if err != nil {
			return nil, errors.Wrap(err, "invalid service CIDR")
		}
		dnsServiceIP, err := block.OffsetAddress(dnsServiceIPOffset)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot derive DNS service IP from %s", block)
		}
		profile.ServiceCidr = ptr.To(block.String())
		profile.DNSServiceIP = ptr.To(dnsServiceIP)
		log.V(4).Info("derived DNS service IP", "serviceCidr", block.String(), "dnsServiceIP", dnsServiceIP)
	}

	return profile, nil
}

// KubenetProfile configures the kubenet network plugin. Only the load
// balancer SKU is tracked for it.
type KubenetProfile struct {
	// LoadBalancerSKU for the cluster. Possible values are 'Standard' and
	// 'Basic'. Defaults to Standard.
	LoadBalancerSKU string
}

// EffectiveLoadBalancerSKU implements NetworkProfile.
func (p *KubenetProfile) EffectiveLoadBalancerSKU() string {
	if p.LoadBalancerSKU == "" {
		return azure.LoadBalancerSKUStandard
	}
	return p.LoadBalancerSKU
}

// Parameters implements NetworkProfile.
func (p *KubenetProfile) Parameters(_ context.Context) (*armcontainerservice.NetworkProfile, error) {
	return &armcontainerservice.NetworkProfile{
		NetworkPlugin:   ptr.To(armcontainerservice.NetworkPluginKubenet),
		LoadBalancerSKU: loadBalancerSKU(p.EffectiveLoadBalancerSKU()),
	}, nil
}

// loadBalancerSKU converts a configured SKU name into the SDK enum, which
// spells the values in lowercase.
func loadBalancerSKU(sku string) *armcontainerservice.LoadBalancerSKU {
	return ptr.To(armcontainerservice.LoadBalancerSKU(strings.ToLower(sku)))
}
