package theme

import "github.com/beevik/etree"

// TMThemePath is the virtual path under which the compiler reads the
// generated syntax theme.
const TMThemePath = "/__silkprint_theme.tmTheme"

// GenerateTMTheme renders syntax styles as a TextMate plist. The first
// settings entry carries the global background and foreground; styles
// without a foreground are omitted.
func GenerateTMTheme(name, background, foreground string, styles []Style) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`)

	plist := doc.CreateElement("plist")
	plist.CreateAttr("version", "1.0")

	root := plist.CreateElement("dict")
	plistString(root, "name", name)
	root.CreateElement("key").SetText("settings")
	settings := root.CreateElement("array")

	global := settings.CreateElement("dict")
	global.CreateElement("key").SetText("settings")
	globalValues := global.CreateElement("dict")
	plistString(globalValues, "background", background)
	plistString(globalValues, "foreground", foreground)

	for _, s := range styles {
		if s.Foreground == "" {
			continue
		}
		entry := settings.CreateElement("dict")
		plistString(entry, "name", s.Name)
		plistString(entry, "scope", s.Scope)
		entry.CreateElement("key").SetText("settings")
		values := entry.CreateElement("dict")
		plistString(values, "foreground", s.Foreground)
		if fs := s.fontStyle(); fs != "" {
			plistString(values, "fontStyle", fs)
		}
	}

	doc.Indent(2)
	return doc.WriteToString()
}

// plistString appends a <key>/<string> pair to a plist dict.
func plistString(dict *etree.Element, key, value string) {
	dict.CreateElement("key").SetText(key)
	dict.CreateElement("string").SetText(value)
}
