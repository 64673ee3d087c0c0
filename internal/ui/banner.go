package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

const bannerText = `
██╗      █████╗ ███╗   ██╗ ██████╗ ███████╗ █████╗ ██╗      █████╗ ██████╗ ██╗   ██╗
██║     ██╔══██╗████╗  ██║██╔════╝ ██╔════╝██╔══██╗██║     ██╔══██╗██╔══██╗╚██╗ ██╔╝
██║     ███████║██╔██╗ ██║██║  ███╗███████╗███████║██║     ███████║██████╔╝ ╚████╔╝
██║     ██╔══██║██║╚██╗██║██║   ██║╚════██║██╔══██║██║     ██╔══██║██╔══██╗  ╚██╔╝
███████╗██║  ██║██║ ╚████║╚██████╔╝███████║██║  ██║███████╗██║  ██║██║  ██║   ██║
╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝
 programmer salaries in Moscow, by language
`

// Salary thresholds used by ColorizeSalary, monthly roubles.
const (
	highSalary   = 250000
	goodSalary   = 180000
	medianSalary = 100000
)

// ColorizeText applies random colors to the input text
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	firstPoint := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	steps := float32(len(chars))
	half := len(chars) / 2
	if half == 0 {
		half = 1
	}

	var b strings.Builder
	for i, ch := range chars {
		b.WriteString(startColor.Fade(0, steps, float32(i%half), firstPoint).Sprint(ch))
	}

	return b.String()
}

// PrintBanner displays the application banner
func PrintBanner(silence bool) {
	if !silence {
		fmt.Println(ColorizeText(bannerText))
	}
}

// ColorizeSalary applies color formatting to a monthly salary. Rows without
// salary data are shown as "n/a".
func ColorizeSalary(amount int, known bool) string {
	if !known {
		return pterm.Gray("n/a")
	}

	formatted := utils.FormatSalary(amount)

	switch {
	case amount >= highSalary:
		return pterm.Green(formatted)
	case amount >= goodSalary:
		return pterm.LightGreen(formatted)
	case amount >= medianSalary:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
