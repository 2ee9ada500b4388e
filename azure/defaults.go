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

package azure

import "fmt"

const (
	// DefaultAKSUserName is the default admin username for AKS node VMs.
	DefaultAKSUserName = "azureuser"
)

const (
	// DefaultAgentPoolName is the name of the agent pool created when none is configured.
	DefaultAgentPoolName = "nodepool1"
	// DefaultAgentPoolCount is the node count applied to agent pools that don't specify one.
	DefaultAgentPoolCount = 3
	// DefaultAgentPoolVMSize is the VM size applied to agent pools that don't specify one.
	DefaultAgentPoolVMSize = "Standard_DS2_v2"
)

const (
	// LoadBalancerSKUStandard is the standard load balancer SKU.
	LoadBalancerSKUStandard = "Standard"
	// LoadBalancerSKUBasic is the basic load balancer SKU. Clusters without a
	// network profile fall back to it.
	LoadBalancerSKUBasic = "Basic"
)

// GenerateDNSPrefix generates a DNS prefix, based on the cluster name.
func GenerateDNSPrefix(clusterName string) string {
	return fmt.Sprintf("%s-dns", clusterName)
}

// GenerateClientSecretParameterName generates the name of the deployment
// parameter carrying the service principal secret for a cluster. The deployer
// supplies the secret value out-of-band under this name.
func GenerateClientSecretParameterName(clusterName string) string {
	return fmt.Sprintf("client-secret-for-%s", clusterName)
}

// GenerateVnetSubnetID generates the ARM resourceId expression for a subnet
// inside a virtual network in the same deployment.
func GenerateVnetSubnetID(vnetName, subnetName string) string {
	return fmt.Sprintf("[resourceId('Microsoft.Network/virtualNetworks/subnets', '%s', '%s')]", vnetName, subnetName)
}

// ParameterReference generates the ARM template expression that references a
// deployment parameter by name.
func ParameterReference(parameterName string) string {
	return fmt.Sprintf("[parameters('%s')]", parameterName)
}
