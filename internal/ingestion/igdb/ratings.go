package igdb

import "strings"

var ageRatingLabels = map[int]string{
	1:  "3",
	2:  "7",
	3:  "12",
	4:  "16",
	5:  "18",
	6:  "RP",
	7:  "EC",
	8:  "E",
	9:  "E10+",
	10: "T",
	11: "M",
	12: "AO",
	13: "CUSA",
	14: "PEGI 3",
	15: "PEGI 7",
	16: "PEGI 12",
	17: "PEGI 16",
	18: "PEGI 18",
	19: "ACB E",
	20: "ACB PG",
	21: "ACB M",
	22: "ACB MA15+",
	23: "ACB AV15+",
	24: "ACB R18+",
	25: "ACB RC",
}

// MapAgeRating translates an IGDB age rating code into its label.
func MapAgeRating(code int) (string, bool) {
	label, ok := ageRatingLabels[code]
	return label, ok
}

// NormalizeCoverURL upgrades a thumbnail reference to the large cover
// variant and makes protocol-relative URLs absolute.
func NormalizeCoverURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	u = strings.Replace(u, "t_thumb", "t_cover_big", 1)
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}
	return u
}
