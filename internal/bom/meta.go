package bom

import (
	"strings"
	"time"

	"github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"
)

// AddMetaSerialNumber sets a serial number if not already set
func AddMetaSerialNumber(bom *cyclonedx.BOM) error {
	if bom.SerialNumber == "" {
		bom.SerialNumber = "urn:uuid:" + generateUUID()
	}
	return nil
}

func generateUUID() string {
	return uuid.New().String()
}

// AddMetaTimestamp sets the timestamp if not already set
func AddMetaTimestamp(bom *cyclonedx.BOM) error {
	if bom.Metadata == nil {
		bom.Metadata = &cyclonedx.Metadata{}
	}
	if bom.Metadata.Timestamp == "" {
		bom.Metadata.Timestamp = CurrentTimestampRFC3339()
	}
	return nil
}

// CurrentTimestampRFC3339 returns now formatted as RFC3339 (e.g. 2026-01-22T10:41:24+01:00)
func CurrentTimestampRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

const (
	DefaultToolVendor  = "idlab-discover"
	DefaultToolName    = "ecoscore-cli"
	DefaultToolVersion = "v0.0.0"
)

// AddMetaTools adds a Component entry for the tool into bom.metadata.tools.Components.
// If toolName or toolVersion are empty the defaults above are used.
func AddMetaTools(bom *cyclonedx.BOM, toolName string, toolVersion string) error {
	if bom.Metadata == nil {
		bom.Metadata = &cyclonedx.Metadata{}
	}
	if bom.Metadata.Tools == nil {
		bom.Metadata.Tools = &cyclonedx.ToolsChoice{}
	}

	name := toolName
	if name == "" {
		name = DefaultToolName
	}
	version := toolVersion
	if version == "" {
		version = DefaultToolVersion
	}

	comp := cyclonedx.Component{
		Type: cyclonedx.ComponentTypeApplication,
		Manufacturer: &cyclonedx.OrganizationalEntity{
			Name: DefaultToolVendor,
		},
		Name:    name,
		Version: version,
	}

	if bom.Metadata.Tools.Components == nil {
		bom.Metadata.Tools.Components = &[]cyclonedx.Component{comp}
	} else {
		components := append(*bom.Metadata.Tools.Components, comp)
		bom.Metadata.Tools.Components = &components
	}

	return nil
}

// GeneratePurl builds a pkg:generic purl for a scoring artifact.
func GeneratePurl(name string, version string) string {
	if name == "" {
		name = "unknown"
	}
	base := "pkg:generic/" + NormalizeSegment(name)
	if version == "" {
		return base
	}
	return base + "@" + NormalizeSegment(strings.ToLower(version))
}

// NormalizeSegment safe-encodes /, @ and spaces in purl segments
func NormalizeSegment(segment string) string {
	var b strings.Builder
	for _, ch := range segment {
		switch ch {
		case '@':
			b.WriteString("%40")
		case ' ':
			b.WriteString("%20")
		case '/':
			b.WriteString("%2F")
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// AddComponentPurl sets Component.PackageURL if not already set. The
// artifact version wins; the content hash is used when no version is known.
func AddComponentPurl(c *cyclonedx.Component) {
	if c == nil || c.PackageURL != "" {
		return
	}

	version := strings.TrimSpace(c.Version)
	if version == "" && c.Hashes != nil && len(*c.Hashes) > 0 {
		version = (*c.Hashes)[0].Value
	}
	c.PackageURL = GeneratePurl(strings.TrimSpace(c.Name), version)
}

// AddComponentBOMRef sets Component.BOMRef. If PURL exists it uses that, otherwise sets a UUID urn.
func AddComponentBOMRef(c *cyclonedx.Component) {
	if c == nil {
		return
	}
	if c.BOMRef != "" {
		return
	}
	if c.PackageURL != "" {
		c.BOMRef = c.PackageURL
		return
	}
	c.BOMRef = "urn:uuid:" + generateUUID()
}
