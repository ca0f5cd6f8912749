// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderfx

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// Stage is a shader pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageGeometry
	StageTessEvaluation
	StageTessControl
	StageCompute
)

var stageNames = [...]string{
	StageVertex:         "Vertex Shader",
	StageFragment:       "Fragment Shader",
	StageGeometry:       "Geometry Shader",
	StageTessEvaluation: "Tessellation Evaluation Shader",
	StageTessControl:    "Tessellation Control Shader",
	StageCompute:        "Compute Shader",
}

// String returns the stage name, e.g. "Fragment Shader".
func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Visibility returns the WebGPU stage flag for s. Stages WebGPU does not
// have (geometry, tessellation) map to ShaderStageNone.
func (s Stage) Visibility() gputypes.ShaderStage {
	switch s {
	case StageVertex:
		return gputypes.ShaderStageVertex
	case StageFragment:
		return gputypes.ShaderStageFragment
	case StageCompute:
		return gputypes.ShaderStageCompute
	default:
		return gputypes.ShaderStageNone
	}
}

// stageSuffixes are checked in order against the end of the lowercased id.
// Both the "tesselation" spelling and the correct one are accepted.
var stageSuffixes = []struct {
	suffix string
	stage  Stage
}{
	{"vertex", StageVertex},
	{"fragment", StageFragment},
	{"geometry", StageGeometry},
	{"tesselationevaluation", StageTessEvaluation},
	{"tessellationevaluation", StageTessEvaluation},
	{"tesselationcontrol", StageTessControl},
	{"tessellationcontrol", StageTessControl},
	{"compute", StageCompute},
}

// InferStage derives the stage from a composite identifier.
// The lowercased id is first matched by suffix ("Blur.Fragment"), then by
// substring ("Blur.FragHQ", "Terrain.TessEval").
func InferStage(id string) (Stage, error) {
	lower := strings.ToLower(id)
	for _, s := range stageSuffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.stage, nil
		}
	}

	switch {
	case strings.Contains(lower, "vert"):
		return StageVertex, nil
	case strings.Contains(lower, "frag"):
		return StageFragment, nil
	case strings.Contains(lower, "geom"):
		return StageGeometry, nil
	case strings.Contains(lower, "tess"):
		if strings.Contains(lower, "eval") {
			return StageTessEvaluation, nil
		}
		if strings.Contains(lower, "control") {
			return StageTessControl, nil
		}
	case strings.Contains(lower, "comp"):
		return StageCompute, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStage, id)
}
