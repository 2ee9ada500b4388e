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
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v4"
	"k8s.io/utils/ptr"

	"github.com/azuretools/akstemplate/azure"
)

type identityKind int

const (
	identityUnset identityKind = iota
	identitySystemAssigned
	identityServicePrincipal
)

// Identity selects the cluster identity mode. The zero value is unset, which
// is buildable but fails validation; use SystemAssignedIdentity or
// ServicePrincipalIdentity to construct a set value. Modeling the choice as a
// tagged value keeps "neither set" explicit instead of relying on call order
// over nullable fields.
type Identity struct {
	kind     identityKind
	clientID string
}

// SystemAssignedIdentity selects a platform-managed identity (MSI) for the
// cluster. No credential parameter is generated.
func SystemAssignedIdentity() Identity {
	return Identity{kind: identitySystemAssigned}
}

// ServicePrincipalIdentity selects a user-supplied service principal. The
// secret is never part of the configuration; a deployment parameter
// reference is generated for it instead.
func ServicePrincipalIdentity(clientID string) Identity {
	return Identity{kind: identityServicePrincipal, clientID: clientID}
}

// IsSet reports whether an identity mode has been selected.
func (i Identity) IsSet() bool {
	return i.kind != identityUnset
}

// resolvedIdentity is the lowered form of an Identity choice.
type resolvedIdentity struct {
	identity            *armcontainerservice.ManagedClusterIdentity
	servicePrincipal    *armcontainerservice.ManagedClusterServicePrincipalProfile
	generatedParameters []string
}

// resolve lowers the identity choice for the named cluster. Callers must
// check IsSet first; resolving an unset identity yields empty profiles.
func (i Identity) resolve(clusterName string) resolvedIdentity {
	switch i.kind {
	case identitySystemAssigned:
		return resolvedIdentity{
			identity: &armcontainerservice.ManagedClusterIdentity{
				Type: ptr.To(armcontainerservice.ResourceIdentityTypeSystemAssigned),
			},
			servicePrincipal: &armcontainerservice.ManagedClusterServicePrincipalProfile{
				ClientID: ptr.To("msi"),
			},
		}
	case identityServicePrincipal:
		parameterName := azure.GenerateClientSecretParameterName(clusterName)
		return resolvedIdentity{
			identity: &armcontainerservice.ManagedClusterIdentity{
				Type: ptr.To(armcontainerservice.ResourceIdentityTypeNone),
			},
			servicePrincipal: &armcontainerservice.ManagedClusterServicePrincipalProfile{
				ClientID: ptr.To(i.clientID),
				Secret:   ptr.To(azure.ParameterReference(parameterName)),
			},
			generatedParameters: []string{parameterName},
		}
	default:
		return resolvedIdentity{}
	}
}
