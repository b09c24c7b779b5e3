// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package isa

// ArchitectureDetail is one item of the ARCHITECTURE section.  The contents
// of this section do not help with instruction translation, so items are not
// interpreted further; each is retained as an uninterpreted name/value pair
// which consumers can parse on demand.
type ArchitectureDetail struct {
	Name  string
	Value string
}

// Architecture represents the contents of the ARCHITECTURE section: the
// architecture name followed by a list of details.  Details are kept in
// insertion order (i.e. source order), which dumps and consumers rely on.
type Architecture struct {
	Name    string
	Details []ArchitectureDetail
}
