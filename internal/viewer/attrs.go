package viewer

// TagName is the element type of the external viewer capability.
const TagName = "model-viewer"

// Viewer attribute names.
const (
	AttrSource             = "src"
	AttrID                 = "id"
	AttrCameraOrbit        = "camera-orbit"
	AttrFieldOfView        = "field-of-view"
	AttrDepth              = "z"
	AttrMaterial           = "material"
	AttrTexture            = "texture"
	AttrColor              = "color"
	AttrShadowIntensity    = "shadow-intensity"
	AttrShadowSoftness     = "shadow-softness"
	AttrEnvironmentImage   = "environment-image"
	AttrAnimationName      = "animation-name"
	AttrAutoplay           = "autoplay"
	AttrAnimationCrossfade = "animation-crossfade-duration"
	AttrPose               = "pose"
	AttrDisableZoom        = "disable-zoom"
	AttrDisablePan         = "disable-pan"
	AttrDisableTap         = "disable-tap"
	AttrInteractionPrompt  = "interaction-prompt"
	AttrAR                 = "ar"
	AttrReveal             = "reveal"
	AttrPoster             = "poster"
)

// Inline style properties.
const (
	StylePosition       = "position"
	StyleLeft           = "left"
	StyleTop            = "top"
	StyleWidth          = "width"
	StyleHeight         = "height"
	StyleTransform      = "transform"
	StyleOpacity        = "opacity"
	StyleDisplay        = "display"
	StyleMargin         = "margin"
	StyleOverflow       = "overflow"
	StyleMaxWidth       = "max-width"
	StyleMaxHeight      = "max-height"
	StyleBackground     = "background"
	StyleClipPath       = "clip-path"
	StyleVisibility     = "visibility"
	StyleLightDirection = "--model-viewer-skybox-light-direction"
)

// DefaultOrbit is assumed when a viewer carries no camera-orbit attribute.
const DefaultOrbit = "0deg 0deg 2.5m"
