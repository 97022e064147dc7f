// Package bom describes a loaded scoring artifact as a CycloneDX ML-BOM.
package bom

import (
	"strconv"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/idlab-discover/ecoscore-cli/internal/model"
)

// Build creates an ML-BOM whose metadata component is the artifact in info.
func Build(info model.Info, toolVersion string) (*cdx.BOM, error) {
	logf(info.Name, "build start")

	comp := buildModelComponent(info)
	AddComponentPurl(comp)
	AddComponentBOMRef(comp)

	bom := cdx.NewBOM()
	bom.Metadata = &cdx.Metadata{Component: comp}

	if err := AddMetaSerialNumber(bom); err != nil {
		return nil, err
	}
	if err := AddMetaTimestamp(bom); err != nil {
		return nil, err
	}
	if err := AddMetaTools(bom, DefaultToolName, toolVersion); err != nil {
		return nil, err
	}

	logf(info.Name, "build ok (ref=%s)", comp.BOMRef)
	return bom, nil
}

func buildModelComponent(info model.Info) *cdx.Component {
	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = "model"
	}

	comp := &cdx.Component{
		Type:      cdx.ComponentTypeMachineLearningModel,
		Name:      name,
		Version:   strings.TrimSpace(info.Version),
		ModelCard: buildModelCard(info),
	}

	if info.SHA256 != "" {
		comp.Hashes = &[]cdx.Hash{{Algorithm: cdx.HashAlgoSHA256, Value: info.SHA256}}
	}

	props := []cdx.Property{{Name: "ecoscore:kind", Value: string(info.Kind)}}
	if info.Kind == model.KindTreeEnsemble {
		props = append(props, cdx.Property{Name: "ecoscore:trees", Value: strconv.Itoa(info.Trees)})
	}
	if info.Path != "" {
		props = append(props, cdx.Property{Name: "ecoscore:artifact", Value: info.Path})
	}
	for i, f := range info.Features {
		props = append(props, cdx.Property{Name: "ecoscore:feature:" + strconv.Itoa(i), Value: f})
	}
	comp.Properties = &props

	return comp
}

// buildModelCard fills the parameters every scoring artifact shares.
func buildModelCard(info model.Info) *cdx.MLModelCard {
	family := "linear regression"
	if info.Kind == model.KindTreeEnsemble {
		family = "gradient boosted trees"
	}

	inputs := make([]cdx.MLInputOutputParameters, 0, len(info.Features))
	for range info.Features {
		inputs = append(inputs, cdx.MLInputOutputParameters{Format: "float64"})
	}
	outputs := []cdx.MLInputOutputParameters{{Format: "eco-score"}}

	return &cdx.MLModelCard{
		ModelParameters: &cdx.MLModelParameters{
			Approach: &cdx.MLModelParametersApproach{
				Type: cdx.MLModelParametersApproachType("supervised"),
			},
			Task:               "regression",
			ArchitectureFamily: family,
			ModelArchitecture:  string(info.Kind),
			Inputs:             &inputs,
			Outputs:            &outputs,
		},
	}
}
