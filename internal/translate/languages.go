package translate

// supportedLanguages mirrors the language table of the translation provider.
// Detection results outside this table are treated as undetected.
var supportedLanguages = map[string]struct{}{
	"af": {}, "sq": {}, "am": {}, "ar": {}, "hy": {}, "az": {}, "eu": {},
	"be": {}, "bn": {}, "bs": {}, "bg": {}, "ca": {}, "ceb": {}, "ny": {},
	"zh-cn": {}, "zh-tw": {}, "co": {}, "hr": {}, "cs": {}, "da": {},
	"nl": {}, "en": {}, "eo": {}, "et": {}, "tl": {}, "fi": {}, "fr": {},
	"fy": {}, "gl": {}, "ka": {}, "de": {}, "el": {}, "gu": {}, "ht": {},
	"ha": {}, "haw": {}, "iw": {}, "he": {}, "hi": {}, "hmn": {}, "hu": {},
	"is": {}, "ig": {}, "id": {}, "ga": {}, "it": {}, "ja": {}, "jw": {},
	"kn": {}, "kk": {}, "km": {}, "ko": {}, "ku": {}, "ky": {}, "lo": {},
	"la": {}, "lv": {}, "lt": {}, "lb": {}, "mk": {}, "mg": {}, "ms": {},
	"ml": {}, "mt": {}, "mi": {}, "mr": {}, "mn": {}, "my": {}, "ne": {},
	"no": {}, "or": {}, "ps": {}, "fa": {}, "pl": {}, "pt": {}, "pa": {},
	"ro": {}, "ru": {}, "sm": {}, "gd": {}, "sr": {}, "st": {}, "sn": {},
	"sd": {}, "si": {}, "sk": {}, "sl": {}, "so": {}, "es": {}, "su": {},
	"sw": {}, "sv": {}, "tg": {}, "ta": {}, "te": {}, "th": {}, "tr": {},
	"uk": {}, "ur": {}, "ug": {}, "uz": {}, "vi": {}, "cy": {}, "xh": {},
	"yi": {}, "yo": {}, "zu": {},
}

// IsSupported reports whether the provider knows the given language code.
func IsSupported(code string) bool {
	_, ok := supportedLanguages[code]
	return ok
}
