// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestInferStage(t *testing.T) {
	tests := []struct {
		id      string
		want    Stage
		wantErr bool
	}{
		{id: "Blur.Vertex", want: StageVertex},
		{id: "Blur.Fragment", want: StageFragment},
		{id: "Grass.Geometry", want: StageGeometry},
		{id: "Terrain.TesselationEvaluation", want: StageTessEvaluation},
		{id: "Terrain.TessellationControl", want: StageTessControl},
		{id: "Particles.Compute", want: StageCompute},
		{id: "blur.fragment", want: StageFragment},
		{id: "Blur.VertHQ", want: StageVertex},
		{id: "Blur.FragShadow", want: StageFragment},
		{id: "Terrain.TessEvalLOD", want: StageTessEvaluation},
		{id: "Terrain.TessControlLOD", want: StageTessControl},
		{id: "Cull.CompPass", want: StageCompute},
		{id: "Terrain.TessLOD", wantErr: true},
		{id: "Blur.Pixel", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := InferStage(tt.id)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStage) {
					t.Errorf("InferStage(%q) err = %v, want ErrUnknownStage", tt.id, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("InferStage(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestStageStringAndVisibility(t *testing.T) {
	tests := []struct {
		stage Stage
		name  string
		vis   gputypes.ShaderStage
	}{
		{StageVertex, "Vertex Shader", gputypes.ShaderStageVertex},
		{StageFragment, "Fragment Shader", gputypes.ShaderStageFragment},
		{StageCompute, "Compute Shader", gputypes.ShaderStageCompute},
		{StageGeometry, "Geometry Shader", gputypes.ShaderStageNone},
		{StageTessControl, "Tessellation Control Shader", gputypes.ShaderStageNone},
		{Stage(42), "Stage(42)", gputypes.ShaderStageNone},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.stage.Visibility(); got != tt.vis {
			t.Errorf("%v.Visibility() = %v, want %v", tt.stage, got, tt.vis)
		}
	}
}
