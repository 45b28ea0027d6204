// Package allergy holds the fixed table of school-meal allergen codes
// used on NEIS menus.
package allergy

import (
	"fmt"
	"strings"
)

// Item is one allergen code entry.
type Item struct {
	Code int
	Name string
}

// Items is the standard code table, in code order. Codes on a menu
// line like "돈까스(1.2.5.6.)" index into this table.
var Items = []Item{
	{1, "난류(계란)"},
	{2, "우유"},
	{3, "메밀"},
	{4, "땅콩"},
	{5, "대두"},
	{6, "밀"},
	{7, "고등어"},
	{8, "게"},
	{9, "새우"},
	{10, "돼지고기"},
	{11, "복숭아"},
	{12, "토마토"},
	{13, "아황산류(10mg/kg 이상)"},
	{14, "호두"},
	{15, "닭고기"},
	{16, "쇠고기"},
	{17, "오징어"},
	{18, "조개류(굴, 전복, 홍합 등)"},
	{19, "잣"},
}

var byCode = func() map[int]string {
	m := make(map[int]string, len(Items))
	for _, item := range Items {
		m[item.Code] = item.Name
	}
	return m
}()

// ListText renders the full numbered table, one code per line.
func ListText() string {
	lines := make([]string, len(Items))
	for i, item := range Items {
		lines[i] = fmt.Sprintf("%d. %s", item.Code, item.Name)
	}
	return strings.Join(lines, "\n")
}

// Names maps allergen codes to their names, skipping unknown codes.
func Names(codes []int) []string {
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		if name, ok := byCode[code]; ok {
			names = append(names, name)
		}
	}
	return names
}
