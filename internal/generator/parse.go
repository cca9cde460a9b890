// AngelaMos | 2026
// parse.go

package generator

import (
	"regexp"
	"strings"
)

var (
	labelPattern   = regexp.MustCompile(`(?i)^[\s>*_#\-•]*(?:\d+[.)]\s*)?[*_]*\s*(hook|caption|hashtags?|cta|call to action)\s*[*_]*\s*:\s*[*_]*\s*(.*)$`)
	headingPattern = regexp.MustCompile(`(?i)^[\s>*_#\-•]*(?:\d+[.)]\s*)?[*_]*\s*(hook|caption|hashtags?|cta|call to action)\s*[*_]*\s*$`)
	hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
)

// ParseLabeled splits free-form model output into content fields. Lines
// beginning with "Hook:", "Caption:", "Hashtags:" or "CTA:" open a section,
// as do numbered variants ("1. Hook:") and bare headings ("### Hook",
// "**Hook**"); following unlabeled lines belong to the open section. Output without any
// labels becomes a hook (first line) and a caption (the rest).
func ParseLabeled(text string, niche string) *Content {
	sections := map[string][]string{}
	current := ""
	labeled := false

	for line := range strings.SplitSeq(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if m := labelPattern.FindStringSubmatch(line); m != nil {
			current = normalizeLabel(m[1])
			labeled = true
			if v := cleanValue(m[2]); v != "" {
				sections[current] = append(sections[current], v)
			}
			continue
		}
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			current = normalizeLabel(m[1])
			labeled = true
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], strings.TrimRight(line, " \t"))
		}
	}

	content := &Content{}
	if labeled {
		content.Hook = joinSection(sections["hook"], " ")
		content.Caption = joinSection(sections["caption"], "\n")
		content.Hashtags = joinSection(sections["hashtags"], " ")
		if cta := joinSection(sections["cta"], " "); cta != "" {
			content.CTA = &cta
		}
	} else {
		content.Hook, content.Caption = splitUnlabeled(text)
	}

	if tags := hashtagPattern.FindAllString(content.Hashtags, -1); len(tags) > 0 {
		content.Hashtags = strings.Join(tags, " ")
	} else if tags := hashtagPattern.FindAllString(text, -1); len(tags) > 0 {
		content.Hashtags = strings.Join(tags, " ")
	} else {
		content.Hashtags = HashtagsFor(niche)
	}

	return content
}

func normalizeLabel(label string) string {
	switch label = strings.ToLower(label); label {
	case "call to action":
		return "cta"
	case "hashtag":
		return "hashtags"
	}
	return label
}

func cleanValue(s string) string {
	return strings.Trim(strings.TrimSpace(s), "*_\"")
}

func joinSection(lines []string, sep string) string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if sep == " " {
		parts := make([]string, 0, len(lines))
		for _, l := range lines {
			if v := cleanValue(l); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, sep)
	}
	return strings.TrimSpace(strings.Join(lines, sep))
}

func splitUnlabeled(text string) (string, string) {
	text = strings.TrimSpace(text)
	hook, rest, _ := strings.Cut(text, "\n")
	return cleanValue(hook), strings.TrimSpace(rest)
}
