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

package agentpools

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v4"
	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"
	"k8s.io/utils/ptr"
)

func TestParameters(t *testing.T) {
	testcases := []struct {
		name        string
		spec        AgentPoolSpec
		expected    *armcontainerservice.ManagedClusterAgentPoolProfile
		expectedErr error
	}{
		{
			name: "defaults applied",
			spec: AgentPoolSpec{
				Name: "nodepool1",
			},
			expected: &armcontainerservice.ManagedClusterAgentPoolProfile{
				Name:   ptr.To("nodepool1"),
				VMSize: ptr.To("Standard_DS2_v2"),
				Count:  ptr.To(int32(3)),
			},
		},
		{
			name: "name is lowercased",
			spec: AgentPoolSpec{
				Name:   "linuxPool",
				VMSize: "Standard_D4s_v3",
				Count:  5,
			},
			expected: &armcontainerservice.ManagedClusterAgentPoolProfile{
				Name:   ptr.To("linuxpool"),
				VMSize: ptr.To("Standard_D4s_v3"),
				Count:  ptr.To(int32(5)),
			},
		},
		{
			name: "vnet and subnet attached",
			spec: AgentPoolSpec{
				Name:       "pool1",
				VnetName:   "cluster-vnet",
				SubnetName: "nodes",
			},
			expected: &armcontainerservice.ManagedClusterAgentPoolProfile{
				Name:         ptr.To("pool1"),
				VMSize:       ptr.To("Standard_DS2_v2"),
				Count:        ptr.To(int32(3)),
				VnetSubnetID: ptr.To("[resourceId('Microsoft.Network/virtualNetworks/subnets', 'cluster-vnet', 'nodes')]"),
			},
		},
		{
			name: "vnet without subnet",
			spec: AgentPoolSpec{
				Name:     "pool1",
				VnetName: "cluster-vnet",
			},
			expectedErr: ErrIncompleteNetworkAttachment,
		},
		{
			name: "subnet without vnet",
			spec: AgentPoolSpec{
				Name:       "pool1",
				SubnetName: "nodes",
			},
			expectedErr: ErrIncompleteNetworkAttachment,
		},
		{
			name: "negative count",
			spec: AgentPoolSpec{
				Name:  "pool1",
				Count: -1,
			},
			expectedErr: ErrNonPositiveCount,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewWithT(t)
			profile, err := tc.spec.Parameters(context.Background())
			if tc.expectedErr != nil {
				g.Expect(err).To(HaveOccurred())
				g.Expect(errors.Is(err, tc.expectedErr)).To(BeTrue())
				g.Expect(err.Error()).To(ContainSubstring(tc.spec.Name))
				return
			}
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(profile).To(Equal(tc.expected), cmp.Diff(profile, tc.expected))
		})
	}
}
