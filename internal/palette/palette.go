/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package palette loads the catalog of component descriptors a user can drop
// onto the canvas. The descriptor is the interface boundary with the palette
// UI: a component type tag plus the default size a fresh instance gets at the
// drop point. Catalog files are JSON validated against an embedded schema.
package palette

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"gopagebuilder/internal/geom"
)

// Descriptor describes one palette entry. ComponentType is opaque to the
// engine; the renderer decides what it looks like.
type Descriptor struct {
	ComponentType string    `json:"componentType"`
	Name          string    `json:"name,omitempty"`
	DefaultSize   geom.Size `json:"defaultSize"`
}

// catalogSchema validates palette catalog documents.
const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["items"],
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["componentType", "defaultSize"],
        "properties": {
          "componentType": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "defaultSize": {
            "type": "object",
            "required": ["W", "H"],
            "properties": {
              "W": {"type": "number", "exclusiveMinimum": 0},
              "H": {"type": "number", "exclusiveMinimum": 0}
            }
          }
        }
      }
    }
  }
}`

type catalogDoc struct {
	Items []Descriptor `json:"items"`
}

// Default returns the built-in catalog used when no file is configured.
func Default() []Descriptor {
	return []Descriptor{
		{ComponentType: "container", Name: "Container", DefaultSize: geom.Size{W: 200, H: 150}},
		{ComponentType: "text", Name: "Text", DefaultSize: geom.Size{W: 120, H: 24}},
		{ComponentType: "button", Name: "Button", DefaultSize: geom.Size{W: 96, H: 32}},
		{ComponentType: "image", Name: "Image", DefaultSize: geom.Size{W: 160, H: 120}},
	}
}

// Parse validates and decodes a catalog document.
func Parse(data []byte) ([]Descriptor, error) {
	schemaLoader := gojsonschema.NewStringLoader(catalogSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("validate palette catalog: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("palette catalog invalid: %s", strings.Join(msgs, "; "))
	}
	var doc catalogDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode palette catalog: %w", err)
	}
	return doc.Items, nil
}

// Load reads a catalog file. An empty path yields the built-in catalog.
func Load(path string) ([]Descriptor, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette catalog: %w", err)
	}
	return Parse(data)
}
