package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"meshscene/internal/mathutil"
)

// DefaultZoomFactor converts a viewer zoom of 1 into a 300 unit backoff.
const DefaultZoomFactor = 300.0

// ErrNGLState is returned for viewer states missing a usable position.
var ErrNGLState = errors.New("scene: invalid viewer state")

// NGLState is the subset of a neuroglancer viewer state that places the
// camera.
type NGLState struct {
	PerspectiveOrientation []float64 `json:"perspectiveOrientation"`
	PerspectiveZoom        *float64  `json:"perspectiveZoom"`
	Navigation             struct {
		Pose struct {
			Position struct {
				VoxelSize        []float64 `json:"voxelSize"`
				VoxelCoordinates []float64 `json:"voxelCoordinates"`
			} `json:"position"`
		} `json:"pose"`
	} `json:"navigation"`
}

// ParseNGLState decodes a JSON viewer state.
func ParseNGLState(data []byte) (NGLState, error) {
	var s NGLState
	if err := json.Unmarshal(data, &s); err != nil {
		return NGLState{}, fmt.Errorf("scene: parse viewer state: %w", err)
	}
	return s, nil
}

// FromNGLState builds the camera matching a viewer state. The focus point
// is voxelCoordinates*voxelSize and the backoff is zoom*zoomFactor; a
// non-positive zoomFactor selects DefaultZoomFactor.
func FromNGLState(s NGLState, zoomFactor float64) (Camera, error) {
	if zoomFactor <= 0 {
		zoomFactor = DefaultZoomFactor
	}

	q := mathutil.QuatIdentity
	if o := s.PerspectiveOrientation; o != nil {
		if len(o) != 4 {
			return Camera{}, fmt.Errorf("%w: orientation has %d components", ErrNGLState, len(o))
		}
		q = mathutil.Quat{o[0], o[1], o[2], o[3]}
	}
	zoom := 10.0
	if s.PerspectiveZoom != nil {
		zoom = *s.PerspectiveZoom
	}

	pos := s.Navigation.Pose.Position
	if len(pos.VoxelCoordinates) != 3 || len(pos.VoxelSize) != 3 {
		return Camera{}, fmt.Errorf("%w: need 3 voxel coordinates and 3 voxel sizes", ErrNGLState)
	}
	var center mathutil.Vec3
	for k := 0; k < 3; k++ {
		center[k] = pos.VoxelCoordinates[k] * pos.VoxelSize[k]
	}
	return FromQuat(center, q, zoom*zoomFactor, true), nil
}
