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

// Package arm lowers resolved resources into ARM deployment templates. It
// holds no cluster-domain logic; resources arrive fully validated.
package arm

import (
	"encoding/json"

	"github.com/pkg/errors"
)

const (
	templateSchema = "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#"
	contentVersion = "1.0.0.0"
)

// Template is an ARM deployment template.
type Template struct {
	Schema         string                        `json:"$schema,omitempty"`
	ContentVersion string                        `json:"contentVersion,omitempty"`
	Parameters     map[string]*TemplateParameter `json:"parameters,omitempty"`
	Variables      map[string]interface{}        `json:"variables,omitempty"`
	Resources      []*Resource                   `json:"resources,omitempty"`
	Outputs        map[string]interface{}        `json:"outputs,omitempty"`
}

// TemplateParameter is a deployment-time parameter declaration.
type TemplateParameter struct {
	Type          string                 `json:"type,omitempty"`
	DefaultValue  interface{}            `json:"defaultValue,omitempty"`
	AllowedValues []interface{}          `json:"allowedValues,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Resource wraps a resource object, usually an Azure SDK type, together with
// the template-level fields ARM expects alongside it.
type Resource struct {
	Resource interface{} `json:"-"`

	APIVersion string   `json:"apiVersion,omitempty"`
	DependsOn  []string `json:"dependsOn,omitempty"`
	Condition  string   `json:"condition,omitempty"`
}

// NewTemplate returns an empty template stanza with the schema and content
// version filled in.
func NewTemplate() *Template {
	return &Template{
		Schema:         templateSchema,
		ContentVersion: contentVersion,
		Parameters:     map[string]*TemplateParameter{},
	}
}

// MarshalJSON flattens the wrapped resource object and the template-level
// fields into a single JSON object, the shape ARM expects for entries of the
// resources array.
func (r *Resource) MarshalJSON() ([]byte, error) {
	inner, err := json.Marshal(r.Resource)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal resource")
	}

	merged := map[string]interface{}{}
	if err := json.Unmarshal(inner, &merged); err != nil {
		return nil, errors.Wrap(err, "resource did not marshal to a JSON object")
	}

	type resourceFields Resource
	outer, err := json.Marshal((*resourceFields)(r))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(outer, &merged); err != nil {
		return nil, err
	}

	return json.Marshal(merged)
}
