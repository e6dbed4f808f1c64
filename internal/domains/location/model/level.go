package model

import (
	"fmt"
	"strings"
)

// Level là hạng của một node trong cây hành chính, lưu dưới dạng SMALLINT.
// Default là hạng gốc (province, không có parent); Street là hạng sâu nhất.
type Level int16

const (
	LevelDefault  Level = 0
	LevelCity     Level = 1
	LevelDistrict Level = 2
	LevelStreet   Level = 3

	// LevelProvince là tên gọi khác của LevelDefault.
	LevelProvince = LevelDefault
)

var levelNames = map[Level]string{
	LevelDefault:  "default",
	LevelCity:     "city",
	LevelDistrict: "district",
	LevelStreet:   "street",
}

// Levels liệt kê các hạng theo thứ tự từ gốc xuống.
func Levels() []Level {
	return []Level{LevelDefault, LevelCity, LevelDistrict, LevelStreet}
}

func (l Level) IsValid() bool {
	_, ok := levelNames[l]
	return ok
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int16(l))
}

// Next trả về hạng của con. Street không có con.
func (l Level) Next() (Level, error) {
	switch l {
	case LevelDefault:
		return LevelCity, nil
	case LevelCity:
		return LevelDistrict, nil
	case LevelDistrict:
		return LevelStreet, nil
	case LevelStreet:
		return l, ErrLevelExhausted
	default:
		return l, fmt.Errorf("%w: %d", ErrInvalidLevel, int16(l))
	}
}

// ParseLevel nhận tên ("city", "province") hoặc số ("1").
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "province" {
		return LevelProvince, nil
	}
	for l, name := range levelNames {
		if name == s || fmt.Sprint(int16(l)) == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}
