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

package arm

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"

	"github.com/azuretools/akstemplate/azure/services/managedclusters"
)

const (
	// managedClustersResourceType is the ARM resource type for AKS clusters.
	managedClustersResourceType = "Microsoft.ContainerService/managedClusters"

	// containerServiceAPIVersion pins the apiVersion emitted for managed
	// cluster resources.
	containerServiceAPIVersion = "2024-01-01"
)

// ClusterTemplate lowers a resolved cluster into a deployment template. Every
// parameter the build generated is declared as a securestring, so the
// deployer supplies its value out-of-band. Duplicate parameter names collapse
// to a single declaration, last writer wins.
func ClusterTemplate(resolved *managedclusters.ResolvedCluster) *Template {
	t := NewTemplate()

	for _, name := range resolved.GeneratedParameters {
		t.Parameters[name] = &TemplateParameter{Type: "securestring"}
	}

	managedCluster := resolved.ManagedCluster
	managedCluster.Type = to.Ptr(managedClustersResourceType)
	if managedCluster.Name == nil {
		managedCluster.Name = to.Ptr(resolved.Name)
	}

	t.Resources = append(t.Resources, &Resource{
		Resource:   managedCluster,
		APIVersion: containerServiceAPIVersion,
	})

	return t
}
