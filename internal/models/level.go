package models

// Level — учебный уровень (трек) ученика.
type Level string

// Допустимые уровни.
const (
	Level1BacMath Level = "1bac-math"
	Level1BacExp  Level = "1bac-exp"
	Level1BacLit  Level = "1bac-lit"
	Level1BacHum  Level = "1bac-hum"
	Level2BacMath Level = "2bac-math"
	Level2BacPhys Level = "2bac-phys"
	Level2BacSVT  Level = "2bac-svt"
	Level2BacLit  Level = "2bac-lit"
)

// Levels перечисляет все допустимые уровни в порядке отображения.
var Levels = []Level{
	Level1BacMath, Level1BacExp, Level1BacLit, Level1BacHum,
	Level2BacMath, Level2BacPhys, Level2BacSVT, Level2BacLit,
}

// Valid сообщает, входит ли уровень в фиксированный список.
func (l Level) Valid() bool {
	for _, v := range Levels {
		if v == l {
			return true
		}
	}
	return false
}

// IsFirstYear сообщает, относится ли уровень к первому году бакалавриата.
func (l Level) IsFirstYear() bool {
	return len(l) > 4 && l[:4] == "1bac"
}
