package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AnalysisID identifier type
type AnalysisID string

// Kind enum, one per analysis service
type Kind string

const (
	KindHabitat       Kind = "habitat"
	KindSpecies       Kind = "species"
	KindCarbon        Kind = "carbon"
	KindReforestation Kind = "reforestation"
)

func (k Kind) Valid() bool {
	switch k {
	case KindHabitat, KindSpecies, KindCarbon, KindReforestation:
		return true
	}
	return false
}

// Source tells which path produced a result
type Source string

const (
	SourceRemote    Source = "remote"
	SourceAlternate Source = "alternate"
	SourceFallback  Source = "fallback"
)

// State of a single analysis run
type State string

const (
	StateIdle         State = "idle"
	StateEncoding     State = "encoding"
	StateRemoteCall   State = "remote-call"
	StateParsed       State = "parsed"
	StateRemoteFailed State = "remote-failed"
	StateValidated    State = "validated-result"
	StateFallback     State = "mock-fallback"
	StateDone         State = "done"
)

// Phase of a recorded failure
type Phase string

const (
	PhaseRemote    Phase = "remote"
	PhaseAlternate Phase = "alternate"
	PhaseStore     Phase = "store"
)

// Upload is an image submitted for analysis. Data is held in memory for the
// duration of one request only.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DefaultImageMIME is sent to the remote endpoint when the upload has no usable type.
const DefaultImageMIME = "image/jpeg"

func (u *Upload) Empty() bool { return u == nil || len(u.Data) == 0 }

func (u *Upload) MIMEType() string {
	if u == nil || !strings.HasPrefix(u.ContentType, "image/") {
		return DefaultImageMIME
	}
	return u.ContentType
}

// Name returns the lowercased filename used by the keyword classifiers.
func (u *Upload) Name() string {
	if u == nil {
		return ""
	}
	return strings.ToLower(u.Filename)
}

// Color profile labels produced by the heuristic analyzer
const (
	ColorGreenish = "greenish"
	ColorBluish   = "bluish"
	ColorReddish  = "reddish"
	ColorBright   = "bright"
	ColorDark     = "dark"
	ColorNeutral  = "neutral"
	ColorUnknown  = "unknown"
)

// Brightness buckets
const (
	BrightnessDark   = "dark"
	BrightnessMedium = "medium"
	BrightnessBright = "bright"
)

// ImageProfile is the output of the local pixel-sampling analyzer.
type ImageProfile struct {
	ColorProfile string `json:"colorProfile"`
	Brightness   string `json:"brightness"`
	IsGreen      bool   `json:"isGreen"`
	IsBlue       bool   `json:"isBlue"`
	IsBrown      bool   `json:"isBrown"`
	HasWater     bool   `json:"hasWater"`
}

// NeutralProfile is reported when an image cannot be decoded.
func NeutralProfile() ImageProfile {
	return ImageProfile{ColorProfile: ColorUnknown, Brightness: BrightnessMedium}
}

// ImageMetadata holds the EXIF fields we care about.
type ImageMetadata struct {
	Camera    string   `json:"camera,omitempty"`
	TakenAt   string   `json:"taken_at,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (m ImageMetadata) HasGPS() bool { return m.Latitude != nil && m.Longitude != nil }

// LocationHint formats GPS coordinates for prompt context, empty without GPS.
func (m ImageMetadata) LocationHint() string {
	if !m.HasGPS() {
		return ""
	}
	return fmt.Sprintf("GPS %s, %s",
		strconv.FormatFloat(*m.Latitude, 'f', 4, 64),
		strconv.FormatFloat(*m.Longitude, 'f', 4, 64))
}

// Record is a persisted analysis result
type Record struct {
	ID            AnalysisID `json:"id"`
	TenantID      string     `json:"tenant_id"`
	Kind          Kind       `json:"kind"`
	Source        Source     `json:"source"`
	Filename      string     `json:"filename,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	Location      string     `json:"location,omitempty"`
	Result        string     `json:"result"` // JSON string of the domain result
	Confidence    float64    `json:"confidence"`
	FailureReason string     `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Failure is a persisted remote-call failure entry
type Failure struct {
	ID          int64     `json:"id"`
	TenantID    string    `json:"tenant_id"`
	AnalysisID  string    `json:"analysis_id"`
	Kind        Kind      `json:"kind"`
	Phase       Phase     `json:"phase"`
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"` // raw JSON string
	CreatedAt   time.Time `json:"created_at"`
}
