package bom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// ResolveFormat maps a format flag and a path to "json" or "xml". With
// "auto" or an empty format the file extension decides.
func ResolveFormat(path string, format string) (string, error) {
	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		if strings.EqualFold(filepath.Ext(path), ".xml") {
			return "xml", nil
		}
		return "json", nil
	case "json", "xml":
		return actual, nil
	default:
		return "", fmt.Errorf("unsupported BOM format: %q", format)
	}
}

func fileFormat(actual string) cdx.BOMFileFormat {
	if actual == "xml" {
		return cdx.BOMFileFormatXML
	}
	return cdx.BOMFileFormatJSON
}

// Read reads a BOM from a JSON or XML file.
func Read(path string, format string) (*cdx.BOM, error) {
	actual, err := ResolveFormat(path, format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bom := new(cdx.BOM)
	if err := cdx.NewBOMDecoder(f, fileFormat(actual)).Decode(bom); err != nil {
		return nil, err
	}
	return bom, nil
}

// Verify reads the BOM at path back and checks that it describes an
// artifact with the given name and SHA-256 digest.
func Verify(path string, format string, name string, sha256 string) error {
	doc, err := Read(path, format)
	if err != nil {
		return fmt.Errorf("read back %s: %w", path, err)
	}
	if doc.Metadata == nil || doc.Metadata.Component == nil {
		return fmt.Errorf("%s has no metadata component", path)
	}
	comp := doc.Metadata.Component
	if comp.Name != name {
		return fmt.Errorf("%s describes %q, expected %q", path, comp.Name, name)
	}
	if sha256 == "" {
		return nil
	}
	if comp.Hashes != nil {
		for _, h := range *comp.Hashes {
			if h.Algorithm == cdx.HashAlgoSHA256 && strings.EqualFold(h.Value, sha256) {
				logf(comp.BOMRef, "verified %s", path)
				return nil
			}
		}
	}
	return fmt.Errorf("%s does not carry the artifact SHA-256 %s", path, sha256)
}

// Write writes a BOM to outputPath. The extension must match the resolved
// format. A non-empty spec encodes with that CycloneDX version.
func Write(bom *cdx.BOM, outputPath string, format string, spec string) error {
	actual, err := ResolveFormat(outputPath, format)
	if err != nil {
		return err
	}

	if ext := filepath.Ext(outputPath); !strings.EqualFold(ext, "."+actual) {
		return fmt.Errorf("output path extension %q does not match format %q", ext, actual)
	}

	var sv cdx.SpecVersion
	if spec != "" {
		var ok bool
		if sv, ok = ParseSpecVersion(spec); !ok {
			return fmt.Errorf("unsupported CycloneDX spec version: %q", spec)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := cdx.NewBOMEncoder(f, fileFormat(actual))
	encoder.SetPretty(true)

	logf(outputPath, "write %s (spec=%s)", actual, specLabel(spec))
	if spec == "" {
		return encoder.Encode(bom)
	}
	return encoder.EncodeVersion(bom, sv)
}

func specLabel(spec string) string {
	if spec == "" {
		return "latest"
	}
	return strings.TrimSpace(spec)
}

// ParseSpecVersion parses a spec version string to a CycloneDX SpecVersion.
func ParseSpecVersion(s string) (cdx.SpecVersion, bool) {
	switch strings.TrimSpace(s) {
	case "1.0":
		return cdx.SpecVersion1_0, true
	case "1.1":
		return cdx.SpecVersion1_1, true
	case "1.2":
		return cdx.SpecVersion1_2, true
	case "1.3":
		return cdx.SpecVersion1_3, true
	case "1.4":
		return cdx.SpecVersion1_4, true
	case "1.5":
		return cdx.SpecVersion1_5, true
	case "1.6":
		return cdx.SpecVersion1_6, true
	default:
		return cdx.SpecVersion1_6, false
	}
}
