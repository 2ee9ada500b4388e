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

import "k8s.io/utils/ptr"

// StringMapPtr converts a string map into the map of string pointers the
// Azure SDK types expect. It returns nil if the map is nil.
func StringMapPtr(m map[string]string) map[string]*string {
	if m == nil {
		return nil
	}
	msp := make(map[string]*string, len(m))
	for k, v := range m {
		msp[k] = ptr.To(v)
	}
	return msp
}

// StringSlicePtr converts a string slice into a slice of string pointers,
// preserving order. It returns nil if the slice is nil.
func StringSlicePtr(s []string) []*string {
	if s == nil {
		return nil
	}
	ssp := make([]*string, len(s))
	for i := range s {
		ssp[i] = ptr.To(s[i])
	}
	return ssp
}
