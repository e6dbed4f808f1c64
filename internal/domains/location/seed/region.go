// Package seed import cây province/city/district từ file YAML hoặc XLSX.
package seed

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Region là một node trong file seed. Children lồng nhau theo cấp.
type Region struct {
	Name         string   `yaml:"name"`
	Code         string   `yaml:"code,omitempty"`
	DisplayOrder int      `yaml:"display_order,omitempty"`
	Children     []Region `yaml:"children,omitempty"`
}

// regionFile là layout của regions.yaml:
//
//	regions:
//	  - name: Hà Nội
//	    code: HN
//	    children:
//	      - name: Quận Ba Đình
type regionFile struct {
	Regions []Region `yaml:"regions"`
}

// Count trả về tổng số node (kể cả node con).
func Count(regions []Region) int {
	n := 0
	for _, r := range regions {
		n += 1 + Count(r.Children)
	}
	return n
}

func ParseYAML(r io.Reader) ([]Region, error) {
	var f regionFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := validateRegions(f.Regions, ""); err != nil {
		return nil, err
	}
	return f.Regions, nil
}

func validateRegions(regions []Region, path string) error {
	for i, r := range regions {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("region %s[%d]: name is required", path, i)
		}
		if err := validateRegions(r.Children, path+r.Name+"/"); err != nil {
			return err
		}
	}
	return nil
}

// ParseFile chọn parser theo extension (.yaml, .yml, .xlsx).
func ParseFile(path string, r io.Reader) ([]Region, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(r)
	case ".xlsx":
		return ParseXLSX(r, "")
	default:
		return nil, fmt.Errorf("unsupported seed file %q (want .yaml or .xlsx)", path)
	}
}
