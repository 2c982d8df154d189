package innertube

import "strings"

// PlayerResponse is the structured per-video payload embedded in the watch page.
type PlayerResponse struct {
	PlayabilityStatus PlayabilityStatus `json:"playabilityStatus"`
	StreamingData     *StreamingData    `json:"streamingData"`
	VideoDetails      VideoDetails      `json:"videoDetails"`
	Microformat       Microformat       `json:"microformat"`
}

type PlayabilityStatus struct {
	Status            string             `json:"status"`
	Reason            string             `json:"reason"`
	PlayableInEmbed   bool               `json:"playableInEmbed"`
	LiveStreamability *LiveStreamability `json:"liveStreamability"`
	ErrorScreen       *ErrorScreen       `json:"errorScreen"`
}

func (p *PlayabilityStatus) IsOK() bool {
	return p.Status == "OK"
}

func (p *PlayabilityStatus) IsUnplayable() bool {
	return strings.EqualFold(p.Status, "UNPLAYABLE")
}

func (p *PlayabilityStatus) IsLive() bool {
	return p.LiveStreamability != nil
}

// DisplayReason returns the platform's reason text, preferring the top-level
// reason over the error screen renderer.
func (p *PlayabilityStatus) DisplayReason() string {
	if strings.TrimSpace(p.Reason) != "" {
		return p.Reason
	}
	if p.ErrorScreen == nil || p.ErrorScreen.PlayerErrorMessageRenderer == nil {
		return ""
	}
	return p.ErrorScreen.PlayerErrorMessageRenderer.Reason.String()
}

type LiveStreamability struct {
	LiveStreamabilityRenderer LiveStreamabilityRenderer `json:"liveStreamabilityRenderer"`
}

type LiveStreamabilityRenderer struct {
	VideoId     string `json:"videoId"`
	PollDelayMs string `json:"pollDelayMs"`
}

type ErrorScreen struct {
	PlayerErrorMessageRenderer *PlayerErrorMessageRenderer `json:"playerErrorMessageRenderer"`
}

type PlayerErrorMessageRenderer struct {
	Reason    LangText `json:"reason"`
	Subreason LangText `json:"subreason"`
}

type StreamingData struct {
	ExpiresInSeconds Number   `json:"expiresInSeconds"`
	Formats          []Format `json:"formats"`
	AdaptiveFormats  []Format `json:"adaptiveFormats"`
	DashManifestURL  string   `json:"dashManifestUrl"`
	HlsManifestURL   string   `json:"hlsManifestUrl"`
}

// ManifestURLs reports the advertised DASH and HLS manifest URLs. A nil
// receiver yields empty strings.
func (s *StreamingData) ManifestURLs() (dash, hls string) {
	if s == nil {
		return "", ""
	}
	return strings.TrimSpace(s.DashManifestURL), strings.TrimSpace(s.HlsManifestURL)
}

type Format struct {
	Itag             Int    `json:"itag"`
	URL              string `json:"url"`
	MimeType         string `json:"mimeType"`
	Bitrate          Int    `json:"bitrate"`
	Width            Int    `json:"width"`
	Height           Int    `json:"height"`
	FPS              Int    `json:"fps"`
	InitRange        *Range `json:"initRange"`
	IndexRange       *Range `json:"indexRange"`
	LastModified     string `json:"lastModified"`
	ContentLength    Number `json:"contentLength"`
	Quality          string `json:"quality"`
	QualityLabel     string `json:"qualityLabel"`
	ProjectionType   string `json:"projectionType"`
	AverageBitrate   Int    `json:"averageBitrate"`
	AudioQuality     string `json:"audioQuality"`
	ApproxDurationMs Number `json:"approxDurationMs"`
	AudioSampleRate  Number `json:"audioSampleRate"`
	AudioChannels    Int    `json:"audioChannels"`
	SignatureCipher  string `json:"signatureCipher"`
	Cipher           string `json:"cipher"` // Legacy
}

type Range struct {
	Start Number `json:"start"`
	End   Number `json:"end"`
}

type VideoDetails struct {
	VideoID          string           `json:"videoId"`
	Title            string           `json:"title"`
	LengthSeconds    Number           `json:"lengthSeconds"`
	Keywords         []string         `json:"keywords"`
	ChannelID        string           `json:"channelId"`
	ShortDescription string           `json:"shortDescription"`
	Thumbnail        ThumbnailDetails `json:"thumbnail"`
	ViewCount        Number           `json:"viewCount"`
	Author           string           `json:"author"`
	IsPrivate        bool             `json:"isPrivate"`
	IsLiveContent    bool             `json:"isLiveContent"`
}

type ThumbnailDetails struct {
	Thumbnails []Thumbnail `json:"thumbnails"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  Int    `json:"width"`
	Height Int    `json:"height"`
}

type Microformat struct {
	PlayerMicroformatRenderer PlayerMicroformatRenderer `json:"playerMicroformatRenderer"`
}

type PlayerMicroformatRenderer struct {
	Thumbnail          ThumbnailDetails `json:"thumbnail"`
	Embed              Embed            `json:"embed"`
	Title              LangText         `json:"title"`
	Description        LangText         `json:"description"`
	LengthSeconds      Number           `json:"lengthSeconds"`
	OwnerProfileURL    string           `json:"ownerProfileUrl"`
	ExternalChannelID  string           `json:"externalChannelId"`
	IsFamilySafe       *bool            `json:"isFamilySafe"`
	AvailableCountries []string         `json:"availableCountries"`
	IsUnlisted         bool             `json:"isUnlisted"`
	ViewCount          Number           `json:"viewCount"`
	Category           string           `json:"category"`
	PublishDate        string           `json:"publishDate"`
	OwnerChannelName   string           `json:"ownerChannelName"`
	UploadDate         string           `json:"uploadDate"`
}

type Embed struct {
	IframeURL string `json:"iframeUrl"`
	Width     Int    `json:"width"`
	Height    Int    `json:"height"`
}

// LangText is the platform's localized text shape: either a simpleText
// value or a list of runs.
type LangText struct {
	SimpleText string    `json:"simpleText"`
	Runs       []TextRun `json:"runs"`
}

func (t LangText) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

type TextRun struct {
	Text string `json:"text"`
}
