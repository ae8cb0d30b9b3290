// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config_test

import (
	"testing"

	"github.com/pangenome/sweepga/config"
)

func TestDefaultValidates(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		mut  func(c *config.Config)
	}{
		{"overlap_threshold too high", func(c *config.Config) { c.OverlapThreshold = 1.5 }},
		{"overlap_threshold negative", func(c *config.Config) { c.OverlapThreshold = -0.1 }},
		{"scaffold_overlap_threshold too high", func(c *config.Config) { c.ScaffoldOverlapThreshold = 2 }},
		{"scaffold_gap negative", func(c *config.Config) { c.ScaffoldGap = -1 }},
		{"min_block_length negative", func(c *config.Config) { c.MinBlockLength = -1 }},
		{"min_identity too high", func(c *config.Config) { c.MinIdentity = 1.1 }},
		{"min_scaffold_identity negative", func(c *config.Config) { c.MinScaffoldIdentity = -0.1 }},
		{"min_scaffold_length negative", func(c *config.Config) { c.MinScaffoldLength = -1 }},
		{"scaffold_max_deviation negative", func(c *config.Config) { c.ScaffoldMaxDeviation = -1 }},
		{"mapping_max_per_query negative", func(c *config.Config) { c.MappingMaxPerQuery = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default()
			tt.mut(&c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
