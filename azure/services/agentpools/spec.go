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

// Package agentpools builds AKS agent pool profiles from declarative
// specifications.
package agentpools

import (
	"context"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v4"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"k8s.io/utils/ptr"

	"github.com/azuretools/akstemplate/azure"
)

var (
	// ErrIncompleteNetworkAttachment is returned when only one of vnet and
	// subnet is configured on a pool.
	ErrIncompleteNetworkAttachment = errors.New("vnet and subnet must be configured together")

	// ErrNonPositiveCount is returned when a pool is configured with a
	// negative node count. A zero count is not an error; it is replaced by
	// DefaultAgentPoolCount.
	ErrNonPositiveCount = errors.New("count must be a positive integer")
)

// AgentPoolSpec contains agent pool specification details. The zero value of
// every field other than Name is replaced by a default at build time.
type AgentPoolSpec struct {
	// Name is the name of the agent pool. It is lowercased on build; AKS pool
	// names are not case-sensitive.
	Name string

	// VMSize defines the Azure VM size for the agent pool VMs.
	// Defaults to Standard_DS2_v2.
	VMSize string

	// Count is the number of desired nodes. Defaults to 3.
	Count int32

	// VnetName is the name of the virtual network whose subnet should contain
	// the nodes. Set together with SubnetName or not at all.
	VnetName string

	// SubnetName is the name of the subnet which should contain the nodes.
	// Set together with VnetName or not at all.
	SubnetName string
}

// Parameters returns the agent pool profile for the pool specification,
// applying name normalization and defaults. Upstream platform limits on the
// node count are not checked here.
func (s *AgentPoolSpec) Parameters(ctx context.Context) (*armcontainerservice.ManagedClusterAgentPoolProfile, error) {
	log := logr.FromContextOrDiscard(ctx)

	if s.Count < 0 {
		return nil, errors.Wrapf(ErrNonPositiveCount, "agent pool %q", s.Name)
	}
	if (s.VnetName == "") != (s.SubnetName == "") {
		return nil, errors.Wrapf(ErrIncompleteNetworkAttachment, "agent pool %q", s.Name)
	}

	profile := &armcontainerservice.ManagedClusterAgentPoolProfile{
		Name:   ptr.To(strings.ToLower(s.Name)),
		VMSize: ptr.To(s.VMSize),
		Count:  ptr.To(s.Count),
	}
	if s.VMSize == "" {
		profile.VMSize = ptr.To(azure.DefaultAgentPoolVMSize)
	}
	if s.Count == 0 {
		profile.Count = ptr.To(int32(azure.DefaultAgentPoolCount))
	}
	if s.VnetName != "" {
		profile.VnetSubnetID = ptr.To(azure.GenerateVnetSubnetID(s.VnetName, s.SubnetName))
	}

	log.V(4).Info("resolved agent pool", "pool", *profile.Name, "vmSize", *profile.VMSize, "count", *profile.Count)
	return profile, nil
}
