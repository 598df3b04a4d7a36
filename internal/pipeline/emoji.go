package pipeline

import (
	"regexp"
	"strings"
)

var shortcodePattern = regexp.MustCompile(`:([a-z0-9_+\-]+):`)

// emoji maps GitHub shortcodes to the characters they stand for.
var emoji = map[string]string{
	"+1":                       "👍",
	"-1":                       "👎",
	"100":                      "💯",
	"alarm_clock":              "⏰",
	"arrow_down":               "⬇️",
	"arrow_left":               "⬅️",
	"arrow_right":              "➡️",
	"arrow_up":                 "⬆️",
	"bangbang":                 "‼️",
	"beer":                     "🍺",
	"bell":                     "🔔",
	"book":                     "📖",
	"books":                    "📚",
	"bookmark":                 "🔖",
	"boom":                     "💥",
	"bug":                      "🐛",
	"bulb":                     "💡",
	"calendar":                 "📆",
	"camera":                   "📷",
	"chart_with_upwards_trend": "📈",
	"check":                    "✔️",
	"checkered_flag":           "🏁",
	"clap":                     "👏",
	"clipboard":                "📋",
	"cloud":                    "☁️",
	"coffee":                   "☕",
	"computer":                 "💻",
	"construction":             "🚧",
	"cool":                     "🆒",
	"crossed_fingers":          "🤞",
	"dart":                     "🎯",
	"email":                    "📧",
	"exclamation":              "❗",
	"eyes":                     "👀",
	"file_folder":              "📁",
	"fire":                     "🔥",
	"gear":                     "⚙️",
	"gem":                      "💎",
	"gift":                     "🎁",
	"globe_with_meridians":     "🌐",
	"grin":                     "😁",
	"hammer":                   "🔨",
	"heart":                    "❤️",
	"heavy_check_mark":         "✔️",
	"heavy_multiplication_x":   "✖️",
	"hourglass":                "⌛",
	"house":                    "🏠",
	"information_source":       "ℹ️",
	"joy":                      "😂",
	"key":                      "🔑",
	"label":                    "🏷️",
	"laughing":                 "😆",
	"link":                     "🔗",
	"lock":                     "🔒",
	"mag":                      "🔍",
	"memo":                     "📝",
	"moon":                     "🌔",
	"muscle":                   "💪",
	"no_entry":                 "⛔",
	"ok_hand":                  "👌",
	"package":                  "📦",
	"paperclip":                "📎",
	"partying_face":            "🥳",
	"pencil":                   "📝",
	"pencil2":                  "✏️",
	"point_right":              "👉",
	"pushpin":                  "📌",
	"question":                 "❓",
	"recycle":                  "♻️",
	"rocket":                   "🚀",
	"rotating_light":           "🚨",
	"sparkles":                 "✨",
	"smile":                    "😄",
	"smiley":                   "😃",
	"sob":                      "😭",
	"star":                     "⭐",
	"star2":                    "🌟",
	"stop_sign":                "🛑",
	"sunny":                    "☀️",
	"tada":                     "🎉",
	"thinking":                 "🤔",
	"thumbsdown":               "👎",
	"thumbsup":                 "👍",
	"trophy":                   "🏆",
	"unlock":                   "🔓",
	"warning":                  "⚠️",
	"wave":                     "👋",
	"white_check_mark":         "✅",
	"wink":                     "😉",
	"wrench":                   "🔧",
	"x":                        "❌",
	"zap":                      "⚡",
}

// replaceShortcodes substitutes known :shortcode: sequences. Unknown codes
// are left as written.
func replaceShortcodes(s string) string {
	if strings.Count(s, ":") < 2 {
		return s
	}
	return shortcodePattern.ReplaceAllStringFunc(s, func(code string) string {
		if e, ok := emoji[code[1:len(code)-1]]; ok {
			return e
		}
		return code
	})
}
