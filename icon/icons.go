package icon

type Icon int

const (
	Fail Icon = iota
	Success
	Info
	Question
	Play
	Pause
	Stop
	Next
	Previous
	Loop
	Shuffle
	Media
	Volume
	Mute
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Info: {
		emoji:   "💡",
		nerd:    "",
		plain:   "i",
		kaomoji: "(°ロ°)",
		squares: "🟦",
	},
	Question: {
		emoji:   "🤔",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・・?)",
		squares: "🟪",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(≧▽≦)",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(￣ー￣)",
		squares: "🟨",
	},
	Stop: {
		emoji:   "⏹️",
		nerd:    "",
		plain:   "[]",
		kaomoji: "(－_－)",
		squares: "⬛",
	},
	Next: {
		emoji:   "⏭️",
		nerd:    "",
		plain:   ">>",
		kaomoji: "(・ω・)>",
		squares: "▶",
	},
	Previous: {
		emoji:   "⏮️",
		nerd:    "",
		plain:   "<<",
		kaomoji: "<(・ω・)",
		squares: "◀",
	},
	Loop: {
		emoji:   "🔁",
		nerd:    "",
		plain:   "@",
		kaomoji: "(@_@)",
		squares: "🟧",
	},
	Shuffle: {
		emoji:   "🔀",
		nerd:    "",
		plain:   "~",
		kaomoji: "(~_~)",
		squares: "🟫",
	},
	Media: {
		emoji:   "🎵",
		nerd:    "",
		plain:   "*",
		kaomoji: "♪(´▽｀)",
		squares: "⬜",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "vol",
		kaomoji: "(ﾟ∀ﾟ)",
		squares: "🟦",
	},
	Mute: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "mute",
		kaomoji: "(ー_ー)",
		squares: "⬛",
	},
}
