/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package palette

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseValidCatalog(t *testing.T) {
	data := []byte(`{"items":[{"componentType":"button","name":"Button","defaultSize":{"W":96,"H":32}}]}`)
	items, err := Parse(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(items) != 1 || items[0].ComponentType != "button" || items[0].DefaultSize.W != 96 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestParseRejectsMissingFields(t *testing.T) {
	cases := []string{
		`{"items":[{"name":"NoType","defaultSize":{"W":10,"H":10}}]}`,
		`{"items":[{"componentType":"x"}]}`,
		`{"items":[{"componentType":"x","defaultSize":{"W":0,"H":10}}]}`,
		`{}`,
	}
	for _, c := range cases {
		if _, err := Parse([]byte(c)); err == nil {
			t.Fatalf("expected validation error for %s", c)
		}
	}
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	items, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("default catalog is empty")
	}
	for _, d := range items {
		if d.ComponentType == "" || d.DefaultSize.W <= 0 || d.DefaultSize.H <= 0 {
			t.Fatalf("bad default descriptor: %+v", d)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.json")
	doc := `{"items":[{"componentType":"card","defaultSize":{"W":240,"H":180}}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	items, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(items) != 1 || items[0].ComponentType != "card" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestParseErrorNamesField(t *testing.T) {
	_, err := Parse([]byte(`{"items":[{"defaultSize":{"W":10,"H":10}}]}`))
	if err == nil || !strings.Contains(err.Error(), "componentType") {
		t.Fatalf("error should name the missing field, got %v", err)
	}
}
