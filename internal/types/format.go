package types

import "strconv"

// Format is one stream format descriptor. Formats coming from the primary
// payload carry the platform's fields; formats coming from an auxiliary
// manifest only carry ID, Itag and URL until enrichment fills the rest.
type Format struct {
	ID               string `json:"id"`
	Itag             int    `json:"itag"`
	URL              string `json:"url"`
	MimeType         string `json:"mimeType,omitempty"`
	Bitrate          int    `json:"bitrate,omitempty"`
	AverageBitrate   int    `json:"averageBitrate,omitempty"`
	Width            int    `json:"width,omitempty"`
	Height           int    `json:"height,omitempty"`
	FPS              int    `json:"fps,omitempty"`
	Quality          string `json:"quality,omitempty"`
	QualityLabel     string `json:"qualityLabel,omitempty"`
	AudioQuality     string `json:"audioQuality,omitempty"`
	AudioSampleRate  int    `json:"audioSampleRate,omitempty"`
	AudioChannels    int    `json:"audioChannels,omitempty"`
	ApproxDurationMs int64  `json:"approxDurationMs,omitempty"`
	LastModified     string `json:"lastModified,omitempty"`
	ContentLength    int64  `json:"contentLength,omitempty"`
	InitRange        *Range `json:"initRange,omitempty"`
	IndexRange       *Range `json:"indexRange,omitempty"`
	ProjectionType   string `json:"projectionType,omitempty"`
	SignatureCipher  string `json:"signatureCipher,omitempty"`
	Cipher           string `json:"cipher,omitempty"`

	// Filled by formats.AddFormatMeta.
	Container    string `json:"container,omitempty"`
	Codecs       string `json:"codecs,omitempty"`
	VideoCodec   string `json:"videoCodec,omitempty"`
	AudioCodec   string `json:"audioCodec,omitempty"`
	AudioBitrate int    `json:"audioBitrate,omitempty"`
	HasVideo     bool   `json:"hasVideo"`
	HasAudio     bool   `json:"hasAudio"`
	IsLive       bool   `json:"isLive"`
	IsHLS        bool   `json:"isHLS"`
	IsDashMPD    bool   `json:"isDashMPD"`
	Ciphered     bool   `json:"ciphered"`
}

type Range struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// ItagFromID parses a numeric format id. Non-numeric ids yield 0.
func ItagFromID(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return n
}
