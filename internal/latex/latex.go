// Package latex converts between LaTeX markup and Unicode text for the
// BibTeX parser and generator.
package latex

import (
	"sort"
	"strings"
)

// accentCommands maps LaTeX accent and symbol commands to Unicode.
// Both braced ({\'e}, {\'{e}}) and bare (\'e) spellings are handled by
// Decode; this table lists the bare command form.
var accentCommands = map[string]string{
	`\'a`: "á", `\'e`: "é", `\'i`: "í", `\'o`: "ó", `\'u`: "ú", `\'y`: "ý",
	`\'A`: "Á", `\'E`: "É", `\'I`: "Í", `\'O`: "Ó", `\'U`: "Ú", `\'Y`: "Ý",
	`\'c`: "ć", `\'n`: "ń", `\'s`: "ś", `\'z`: "ź",
	"\\`a": "à", "\\`e": "è", "\\`i": "ì", "\\`o": "ò", "\\`u": "ù",
	"\\`A": "À", "\\`E": "È", "\\`I": "Ì", "\\`O": "Ò", "\\`U": "Ù",
	`\^a`: "â", `\^e`: "ê", `\^i`: "î", `\^o`: "ô", `\^u`: "û",
	`\^A`: "Â", `\^E`: "Ê", `\^I`: "Î", `\^O`: "Ô", `\^U`: "Û",
	`\"a`: "ä", `\"e`: "ë", `\"i`: "ï", `\"o`: "ö", `\"u`: "ü", `\"y`: "ÿ",
	`\"A`: "Ä", `\"E`: "Ë", `\"I`: "Ï", `\"O`: "Ö", `\"U`: "Ü",
	`\~a`: "ã", `\~n`: "ñ", `\~o`: "õ",
	`\~A`: "Ã", `\~N`: "Ñ", `\~O`: "Õ",
	`\c c`: "ç", `\c C`: "Ç",
	`\v c`: "č", `\v s`: "š", `\v z`: "ž",
	`\v C`: "Č", `\v S`: "Š", `\v Z`: "Ž",
	`\o`: "ø", `\O`: "Ø", `\l`: "ł", `\L`: "Ł",
	`\aa`: "å", `\AA`: "Å", `\ae`: "æ", `\AE`: "Æ",
	`\ss`: "ß", `\oe`: "œ", `\OE`: "Œ",
	`\&`: "&", `\%`: "%", `\$`: "$", `\#`: "#", `\_`: "_",
	`\textasciitilde`: "~", `\textasciicircum`: "^",
	`\textendash`: "–", `\textemdash`: "—",
}

// ligatures must be matched longest-first, so they stay out of the map
// and are appended to decodePairs in a fixed order.
var ligatures = []string{
	`---`, "—",
	`--`, "–",
	"``", "“",
	`''`, "”",
}

// decodePairs is accentCommands expanded to the spellings that actually
// occur in .bib files, longest pattern first so e.g. {\'{e}} wins over \'e.
var decodePairs = func() []string {
	// Longer commands first so \oe is never shadowed by \o.
	cmds := make([]string, 0, len(accentCommands))
	for cmd := range accentCommands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		if len(cmds[i]) != len(cmds[j]) {
			return len(cmds[i]) > len(cmds[j])
		}
		return cmds[i] < cmds[j]
	})

	var pairs []string
	for _, cmd := range cmds {
		r := accentCommands[cmd]
		if strings.HasPrefix(cmd, `\`) && len(cmd) > 2 {
			last := cmd[len(cmd)-1:]
			head := cmd[:len(cmd)-1]
			// {\'{e}}, {\'e}, \'{e}
			pairs = append(pairs, "{"+head+"{"+last+"}}", r)
			pairs = append(pairs, "{"+cmd+"}", r)
			pairs = append(pairs, head+"{"+last+"}", r)
		} else if strings.HasPrefix(cmd, `\`) {
			pairs = append(pairs, "{"+cmd+"}", r)
		}
		pairs = append(pairs, cmd, r)
	}
	pairs = append(pairs, ligatures...)
	return pairs
}()

var decoder = strings.NewReplacer(decodePairs...)

// Decode converts LaTeX accent commands and escapes in s to Unicode.
// Unknown commands are left untouched.
func Decode(s string) string {
	return decoder.Replace(s)
}

// encoder maps special characters back to their LaTeX escapes.
// Ampersand first so later escapes never produce a bare &.
var encoder = strings.NewReplacer(
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
	"á", `{\'a}`, "é", `{\'e}`, "í", `{\'i}`, "ó", `{\'o}`, "ú", `{\'u}`, "ý", `{\'y}`,
	"Á", `{\'A}`, "É", `{\'E}`, "Í", `{\'I}`, "Ó", `{\'O}`, "Ú", `{\'U}`, "Ý", `{\'Y}`,
	"à", "{\\`a}", "è", "{\\`e}", "ì", "{\\`i}", "ò", "{\\`o}", "ù", "{\\`u}",
	"À", "{\\`A}", "È", "{\\`E}", "Ì", "{\\`I}", "Ò", "{\\`O}", "Ù", "{\\`U}",
	"â", `{\^a}`, "ê", `{\^e}`, "î", `{\^i}`, "ô", `{\^o}`, "û", `{\^u}`,
	"ä", `{\"a}`, "ë", `{\"e}`, "ï", `{\"i}`, "ö", `{\"o}`, "ü", `{\"u}`,
	"Ä", `{\"A}`, "Ë", `{\"E}`, "Ï", `{\"I}`, "Ö", `{\"O}`, "Ü", `{\"U}`,
	"ã", `{\~a}`, "ñ", `{\~n}`, "õ", `{\~o}`,
	"Ã", `{\~A}`, "Ñ", `{\~N}`, "Õ", `{\~O}`,
	"ç", `{\c c}`, "Ç", `{\c C}`,
	"č", `{\v c}`, "š", `{\v s}`, "ž", `{\v z}`,
	"Č", `{\v C}`, "Š", `{\v S}`, "Ž", `{\v Z}`,
	"ø", `{\o}`, "Ø", `{\O}`, "ł", `{\l}`, "Ł", `{\L}`,
	"å", `{\aa}`, "Å", `{\AA}`, "æ", `{\ae}`, "Æ", `{\AE}`,
	"ß", `{\ss}`, "œ", `{\oe}`, "Œ", `{\OE}`,
)

// Encode converts Unicode accented characters and LaTeX-special
// characters in s to LaTeX markup. Braces are left alone so callers can
// emit values inside {...} delimiters.
func Encode(s string) string {
	return encoder.Replace(s)
}
