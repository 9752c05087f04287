// Package snapshot saves and restores the visual configuration of a viewer
// as a flat record of strings.
package snapshot

import (
	"encoding/json"
	"fmt"

	"model-stage/internal/viewer"
)

// State is an independent copy of a viewer's observable attributes. Fields
// hold the raw style or attribute text; "" means unset.
type State struct {
	Left        string `json:"left"`
	Top         string `json:"top"`
	Width       string `json:"width"`
	Height      string `json:"height"`
	Scale       string `json:"scale"`
	Orbit       string `json:"orbit"`
	FOV         string `json:"fov"`
	Material    string `json:"material,omitempty"`
	Texture     string `json:"texture,omitempty"`
	Color       string `json:"color,omitempty"`
	Shadow      string `json:"shadow,omitempty"`
	Environment string `json:"environment,omitempty"`
	Opacity     string `json:"opacity,omitempty"`
}

// Capture reads the current state of h. A nil handle yields a zero State
// and false.
func Capture(h *viewer.Handle) (State, bool) {
	if h == nil {
		return State{}, false
	}
	attr := func(name string) string {
		v, _ := h.Attr(name)
		return v
	}
	return State{
		Left:        h.Style(viewer.StyleLeft),
		Top:         h.Style(viewer.StyleTop),
		Width:       h.Style(viewer.StyleWidth),
		Height:      h.Style(viewer.StyleHeight),
		Scale:       h.Style(viewer.StyleTransform),
		Orbit:       attr(viewer.AttrCameraOrbit),
		FOV:         attr(viewer.AttrFieldOfView),
		Material:    attr(viewer.AttrMaterial),
		Texture:     attr(viewer.AttrTexture),
		Color:       attr(viewer.AttrColor),
		Shadow:      attr(viewer.AttrShadowIntensity),
		Environment: attr(viewer.AttrEnvironmentImage),
		Opacity:     h.Style(viewer.StyleOpacity),
	}, true
}

// Restore writes s back to h. Position, size, scale, orbit and field of view
// are always written; material, texture, color, shadow, environment and
// opacity only when s holds a value, so a restore never clears an attribute
// the snapshot knew nothing about.
func Restore(h *viewer.Handle, s State) {
	if h == nil {
		return
	}
	h.SetStyles(
		viewer.StyleLeft, s.Left,
		viewer.StyleTop, s.Top,
		viewer.StyleWidth, s.Width,
		viewer.StyleHeight, s.Height,
		viewer.StyleTransform, s.Scale,
	)
	h.SetAttr(viewer.AttrCameraOrbit, s.Orbit)
	h.SetAttr(viewer.AttrFieldOfView, s.FOV)

	optional := []struct{ name, value string }{
		{viewer.AttrMaterial, s.Material},
		{viewer.AttrTexture, s.Texture},
		{viewer.AttrColor, s.Color},
		{viewer.AttrShadowIntensity, s.Shadow},
		{viewer.AttrEnvironmentImage, s.Environment},
	}
	for _, o := range optional {
		if o.value != "" {
			h.SetAttr(o.name, o.value)
		}
	}
	if s.Opacity != "" {
		h.SetStyle(viewer.StyleOpacity, s.Opacity)
	}
}

// Marshal encodes s as JSON.
func Marshal(s State) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a JSON snapshot.
func Unmarshal(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	return s, nil
}
