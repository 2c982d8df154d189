package formats

// itagInfo is the static description of a well-known itag. It only fills
// fields the platform left empty, which is mostly the case for manifest stubs.
type itagInfo struct {
	MimeType     string
	QualityLabel string
	Bitrate      int
	AudioBitrate int
}

var itagTable = map[int]itagInfo{
	5:  {`video/flv; codecs="Sorenson H.263, mp3"`, "240p", 250000, 64},
	6:  {`video/flv; codecs="Sorenson H.263, mp3"`, "270p", 800000, 64},
	13: {`video/3gp; codecs="MPEG-4 Visual, aac"`, "", 500000, 0},
	17: {`video/3gp; codecs="MPEG-4 Visual, aac"`, "144p", 50000, 24},
	18: {`video/mp4; codecs="avc1.42001E, mp4a.40.2"`, "360p", 500000, 96},
	22: {`video/mp4; codecs="avc1.64001F, mp4a.40.2"`, "720p", 2000000, 192},
	36: {`video/3gp; codecs="MPEG-4 Visual, aac"`, "240p", 175000, 32},
	37: {`video/mp4; codecs="avc1.64001F, mp4a.40.2"`, "1080p", 3000000, 192},
	38: {`video/mp4; codecs="avc1.64001F, mp4a.40.2"`, "3072p", 3500000, 192},
	43: {`video/webm; codecs="vp8, vorbis"`, "360p", 500000, 128},
	44: {`video/webm; codecs="vp8, vorbis"`, "480p", 1000000, 128},
	45: {`video/webm; codecs="vp8, vorbis"`, "720p", 2000000, 192},
	46: {`video/webm; codecs="vp8, vorbis"`, "1080p", 0, 192},

	91: {`video/ts; codecs="avc1.42c00b, mp4a.40.5"`, "144p", 100000, 48},
	92: {`video/ts; codecs="avc1.4d4015, mp4a.40.5"`, "240p", 150000, 48},
	93: {`video/ts; codecs="avc1.4d401e, mp4a.40.2"`, "360p", 500000, 128},
	94: {`video/ts; codecs="avc1.4d401e, mp4a.40.2"`, "480p", 800000, 128},
	95: {`video/ts; codecs="avc1.4d401f, mp4a.40.2"`, "720p", 1500000, 256},
	96: {`video/ts; codecs="avc1.640028, mp4a.40.2"`, "1080p", 2500000, 256},

	132: {`video/ts; codecs="avc1.42c00b, mp4a.40.5"`, "240p", 150000, 48},
	133: {`video/mp4; codecs="avc1.4d4015"`, "240p", 200000, 0},
	134: {`video/mp4; codecs="avc1.4d401e"`, "360p", 300000, 0},
	135: {`video/mp4; codecs="avc1.4d401f"`, "480p", 500000, 0},
	136: {`video/mp4; codecs="avc1.4d401f"`, "720p", 1000000, 0},
	137: {`video/mp4; codecs="avc1.640028"`, "1080p", 2500000, 0},
	138: {`video/mp4; codecs="avc1.640033"`, "4320p", 13500000, 0},
	160: {`video/mp4; codecs="avc1.4d400c"`, "144p", 100000, 0},
	264: {`video/mp4; codecs="avc1.640032"`, "1440p", 4000000, 0},
	266: {`video/mp4; codecs="avc1.640033"`, "2160p", 12500000, 0},
	298: {`video/mp4; codecs="avc1.4d4020"`, "720p", 3000000, 0},
	299: {`video/mp4; codecs="avc1.64002a"`, "1080p", 5500000, 0},

	242: {`video/webm; codecs="vp9"`, "240p", 100000, 0},
	243: {`video/webm; codecs="vp9"`, "360p", 250000, 0},
	244: {`video/webm; codecs="vp9"`, "480p", 500000, 0},
	247: {`video/webm; codecs="vp9"`, "720p", 700000, 0},
	248: {`video/webm; codecs="vp9"`, "1080p", 1500000, 0},
	271: {`video/webm; codecs="vp9"`, "1440p", 9000000, 0},
	278: {`video/webm; codecs="vp9"`, "144p", 80000, 0},
	302: {`video/webm; codecs="vp9"`, "720p", 2500000, 0},
	303: {`video/webm; codecs="vp9"`, "1080p", 5000000, 0},
	308: {`video/webm; codecs="vp9"`, "1440p", 10000000, 0},
	313: {`video/webm; codecs="vp9"`, "2160p", 13000000, 0},
	315: {`video/webm; codecs="vp9"`, "2160p", 20000000, 0},

	139: {`audio/mp4; codecs="mp4a.40.5"`, "", 0, 48},
	140: {`audio/mp4; codecs="mp4a.40.2"`, "", 0, 128},
	141: {`audio/mp4; codecs="mp4a.40.2"`, "", 0, 256},
	171: {`audio/webm; codecs="vorbis"`, "", 0, 128},
	172: {`audio/webm; codecs="vorbis"`, "", 0, 192},
	249: {`audio/webm; codecs="opus"`, "", 0, 48},
	250: {`audio/webm; codecs="opus"`, "", 0, 64},
	251: {`audio/webm; codecs="opus"`, "", 0, 160},
}
