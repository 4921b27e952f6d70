package quilt

import "strings"

// UnknownMaterial material principal cuando la celda de relleno está vacía.
const UnknownMaterial = "未知"

// MaterialKeyword asocia una palabra clave de composición con su etiqueta canónica.
type MaterialKeyword struct {
	Keyword string
	Label   string
}

// materialKeywords se evalúa en orden: gana la primera coincidencia
// (algodón, plumón de ganso, plumón de pato, lana, seda, fibra sintética).
var materialKeywords = []MaterialKeyword{
	{Keyword: "棉", Label: "棉"},
	{Keyword: "鹅绒", Label: "鹅绒"},
	{Keyword: "鸭绒", Label: "鸭绒"},
	{Keyword: "羊毛", Label: "羊毛"},
	{Keyword: "蚕丝", Label: "蚕丝"},
	{Keyword: "纤维", Label: "纤维"},
}

// MaterialKeywords devuelve una copia de la lista de prioridad.
func MaterialKeywords() []MaterialKeyword {
	out := make([]MaterialKeyword, len(materialKeywords))
	copy(out, materialKeywords)
	return out
}

// CleanMaterial separa el material principal de la composición detallada.
// Con porcentajes ("50%棉+50%聚酯纤维") el principal sale de la lista de prioridad,
// si no, del texto antes del primer "+"; sin porcentajes el material es ambas cosas.
func CleanMaterial(raw string) (primary, details string) {
	if IsBlank(raw) {
		return UnknownMaterial, ""
	}
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "%") {
		return s, s
	}
	for _, mk := range materialKeywords {
		if strings.Contains(s, mk.Keyword) {
			return mk.Label, s
		}
	}
	if before, _, found := strings.Cut(s, "+"); found {
		return strings.TrimSpace(before), s
	}
	return s, s
}

// QuiltSuffix sufijo de los nombres derivados ("冬" -> "冬被").
const QuiltSuffix = "被"

// GenerateName sintetiza un nombre "<material> <marca> <temporada>被". Omite la marca
// si está vacía o es un marcador de nulo, y el material si la celda de relleno está vacía.
func GenerateName(brand, season, material string) string {
	parts := make([]string, 0, 3)
	if !IsBlank(material) {
		primary, _ := CleanMaterial(material)
		parts = append(parts, primary)
	}
	if !isPlaceholderBrand(brand) {
		parts = append(parts, strings.TrimSpace(brand))
	}
	parts = append(parts, strings.TrimSpace(season)+QuiltSuffix)
	return strings.Join(parts, " ")
}

func isPlaceholderBrand(brand string) bool {
	b := strings.TrimSpace(brand)
	return IsBlank(b) || b == "-" || b == "无"
}
