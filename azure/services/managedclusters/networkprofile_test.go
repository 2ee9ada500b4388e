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
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v4"
	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"
	"k8s.io/utils/ptr"

	"github.com/azuretools/akstemplate/util/cidr"
)

func TestAzureCNIProfileParameters(t *testing.T) {
	testcases := []struct {
		name        string
		profile     AzureCNIProfile
		expected    *armcontainerservice.NetworkProfile
		expectedErr error
	}{
		{
			name:    "no service CIDR leaves service fields unset",
			profile: AzureCNIProfile{},
			expected: &armcontainerservice.NetworkProfile{
				NetworkPlugin:   ptr.To(armcontainerservice.NetworkPluginAzure),
				LoadBalancerSKU: ptr.To(armcontainerservice.LoadBalancerSKUStandard),
			},
		},
		{
			name: "DNS service IP derived from service CIDR",
			profile: AzureCNIProfile{
				ServiceCIDR: "10.250.0.0/16",
			},
			expected: &armcontainerservice.NetworkProfile{
				NetworkPlugin:   ptr.To(armcontainerservice.NetworkPluginAzure),
				LoadBalancerSKU: ptr.To(armcontainerservice.LoadBalancerSKUStandard),
				ServiceCidr:     ptr.To("10.250.0.0/16"),
				DNSServiceIP:    ptr.To("10.250.0.2"),
			},
		},
		{
			name: "non-canonical service CIDR is canonicalized",
			profile: AzureCNIProfile{
				ServiceCIDR: "10.96.11.12/12",
			},
			expected: &armcontainerservice.NetworkProfile{
				NetworkPlugin:   ptr.To(armcontainerservice.NetworkPluginAzure),
				LoadBalancerSKU: ptr.To(armcontainerservice.LoadBalancerSKUStandard),
				ServiceCidr:     ptr.To("10.96.0.0/12"),
				DNSServiceIP:    ptr.To("10.96.0.2"),
			},
		},
		{
			name: "basic load balancer",
			profile: AzureCNIProfile{
				LoadBalancerSKU: "Basic",
			},
			expected: &armcontainerservice.NetworkProfile{
				NetworkPlugin:   ptr.To(armcontainerservice.NetworkPluginAzure),
				LoadBalancerSKU: ptr.To(armcontainerservice.LoadBalancerSKUBasic),
			},
		},
		{
			name: "malformed service CIDR",
			profile: AzureCNIProfile{
				ServiceCIDR: "10.250.0.0",
			},
			expectedErr: cidr.ErrInvalidFormat,
		},
		{
			name: "service block too small for the DNS offset",
			profile: AzureCNIProfile{
				ServiceCIDR: "10.250.0.0/32",
			},
			expectedErr: cidr.ErrOutOfRange,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewWithT(t)
			profile, err := tc.profile.Parameters(context.Background())
			if tc.expectedErr != nil {
				g.Expect(err).To(HaveOccurred())
				g.Expect(errors.Is(err, tc.expectedErr)).To(BeTrue())
				return
			}
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(profile).To(Equal(tc.expected), cmp.Diff(profile, tc.expected))
		})
	}
}

func TestKubenetProfileParameters(t *testing.T) {
	g := NewWithT(t)

	profile, err := (&KubenetProfile{}).Parameters(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(profile.NetworkPlugin).To(Equal(ptr.To(armcontainerservice.NetworkPluginKubenet)))
	g.Expect(profile.LoadBalancerSKU).To(Equal(ptr.To(armcontainerservice.LoadBalancerSKUStandard)))
	g.Expect(profile.ServiceCidr).To(BeNil())
	g.Expect(profile.DNSServiceIP).To(BeNil())

	profile, err = (&KubenetProfile{LoadBalancerSKU: "Basic"}).Parameters(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(profile.LoadBalancerSKU).To(Equal(ptr.To(armcontainerservice.LoadBalancerSKUBasic)))
}

func TestEffectiveLoadBalancerSKU(t *testing.T) {
	g := NewWithT(t)

	var p NetworkProfile = &AzureCNIProfile{}
	g.Expect(p.EffectiveLoadBalancerSKU()).To(Equal("Standard"))

	p = &AzureCNIProfile{LoadBalancerSKU: "Basic"}
	g.Expect(p.EffectiveLoadBalancerSKU()).To(Equal("Basic"))

	p = &KubenetProfile{}
	g.Expect(p.EffectiveLoadBalancerSKU()).To(Equal("Standard"))

	p = &KubenetProfile{LoadBalancerSKU: "Basic"}
	g.Expect(p.EffectiveLoadBalancerSKU()).To(Equal("Basic"))
}
