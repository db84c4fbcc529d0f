// Package scenefile reads YAML scene descriptions: a camera and a list of
// actors with their geometry inline. JSON documents are accepted as well.
package scenefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"meshscene/internal/mathutil"
	"meshscene/internal/scene"
)

var (
	// ErrCamera is returned for camera blocks without exactly one placement.
	ErrCamera = errors.New("scenefile: camera needs exactly one of oriented, quat, ngl_state, ngl_state_file")
	// ErrActor is returned for actor entries that cannot be built.
	ErrActor = errors.New("scenefile: invalid actor")
)

// Scene is one parsed scene file.
type Scene struct {
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Background string      `yaml:"background"`
	Output     string      `yaml:"output"`
	Camera     *CameraSpec `yaml:"camera"`
	Actors     []ActorSpec `yaml:"actors"`

	// Path is the file the scene was loaded from, if any.
	Path string `yaml:"-"`
}

// CameraSpec places the camera. ViewAngle overrides the default field of
// view for every variant.
type CameraSpec struct {
	Oriented     *OrientedSpec  `yaml:"oriented"`
	Quat         *QuatSpec      `yaml:"quat"`
	NGLState     map[string]any `yaml:"ngl_state"`
	NGLStateFile string         `yaml:"ngl_state_file"`
	ZoomFactor   float64        `yaml:"zoom_factor"`
	ViewAngle    float64        `yaml:"view_angle"`
}

// OrientedSpec mirrors scene.Oriented. Omitted fields take the scene
// package defaults.
type OrientedSpec struct {
	Center        [3]float64  `yaml:"center"`
	Up            *[3]float64 `yaml:"up"`
	Backoff       *float64    `yaml:"backoff"`
	BackoffVector *[3]float64 `yaml:"backoff_vector"`
}

// Camera places the camera, filling in omitted fields.
func (o *OrientedSpec) Camera() scene.Camera {
	up, vec, backoff := scene.DefaultOrientedUp, scene.DefaultBackoffVector, scene.DefaultBackoff
	if o.Up != nil {
		up = *o.Up
	}
	if o.BackoffVector != nil {
		vec = *o.BackoffVector
	}
	if o.Backoff != nil {
		backoff = *o.Backoff
	}
	return scene.Oriented(o.Center, up, backoff, vec)
}

// QuatSpec mirrors scene.FromQuat. Orientation defaults to the identity,
// distance to scene.DefaultQuatDistance and ngl_correct to true.
type QuatSpec struct {
	Center      [3]float64  `yaml:"center"`
	Orientation *[4]float64 `yaml:"orientation"`
	Distance    *float64    `yaml:"distance"`
	NGLCorrect  *bool       `yaml:"ngl_correct"`
}

// Camera places the camera, filling in omitted fields.
func (q *QuatSpec) Camera() scene.Camera {
	orient := mathutil.Quat{0, 0, 0, 1}
	if q.Orientation != nil {
		orient = mathutil.Quat(*q.Orientation)
	}
	dist := scene.DefaultQuatDistance
	if q.Distance != nil {
		dist = *q.Distance
	}
	correct := true
	if q.NGLCorrect != nil {
		correct = *q.NGLCorrect
	}
	return scene.FromQuat(q.Center, orient, dist, correct)
}

// Load reads and parses a scene file. Unknown keys are rejected.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse decodes a scene document.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scenefile: parse: %w", err)
	}
	return &s, nil
}

// OutputName returns the image file name for the scene: Output when set,
// else the scene file's base name, with the format's extension added when
// missing.
func (s *Scene) OutputName(format string) string {
	name := s.Output
	if name == "" {
		base := filepath.Base(s.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
		if name == "" || name == "." {
			name = "scene"
		}
	}
	if filepath.Ext(name) == "" {
		name += "." + format
	}
	return name
}

// BuildCamera resolves the camera block. It returns nil when the scene has
// none so the caller can fit one to the actors. zoomFactor is used for
// viewer states unless the block sets its own.
func (s *Scene) BuildCamera(zoomFactor float64) (*scene.Camera, error) {
	cs := s.Camera
	if cs == nil {
		return nil, nil
	}

	n := 0
	for _, set := range []bool{cs.Oriented != nil, cs.Quat != nil, cs.NGLState != nil, cs.NGLStateFile != ""} {
		if set {
			n++
		}
	}
	if n != 1 {
		return nil, ErrCamera
	}
	if cs.ZoomFactor > 0 {
		zoomFactor = cs.ZoomFactor
	}

	var cam scene.Camera
	switch {
	case cs.Oriented != nil:
		cam = cs.Oriented.Camera()
	case cs.Quat != nil:
		cam = cs.Quat.Camera()
	default:
		state, err := s.nglState()
		if err != nil {
			return nil, err
		}
		if cam, err = scene.FromNGLState(state, zoomFactor); err != nil {
			return nil, fmt.Errorf("scenefile: camera: %w", err)
		}
	}
	if cs.ViewAngle > 0 {
		cam.ViewAngle = cs.ViewAngle
	}
	return &cam, nil
}

func (s *Scene) nglState() (scene.NGLState, error) {
	cs := s.Camera
	if cs.NGLStateFile == "" {
		data, err := json.Marshal(cs.NGLState)
		if err != nil {
			return scene.NGLState{}, fmt.Errorf("scenefile: camera ngl_state: %w", err)
		}
		return scene.ParseNGLState(data)
	}

	path := cs.NGLStateFile
	if !filepath.IsAbs(path) && s.Path != "" {
		path = filepath.Join(filepath.Dir(s.Path), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.NGLState{}, fmt.Errorf("scenefile: read viewer state: %w", err)
	}
	return scene.ParseNGLState(data)
}
