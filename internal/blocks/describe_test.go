package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	testCases := []struct {
		name  string
		size  Size
		color Color
		form  Form
		want  string
	}{
		{name: "all attributes", size: SizeLarge, color: "red", form: FormBox, want: "large red box"},
		{name: "form only", size: SizeAny, color: ColorAny, form: FormBall, want: "ball"},
		{name: "nothing specified falls back to object", size: SizeAny, color: ColorAny, form: FormAny, want: "object"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.want, Describe(tc.size, tc.color, tc.form))
		})
	}
}

func TestMinimalDescription(t *testing.T) {
	w := &World{
		Objects: map[string]ObjectDef{
			"redBall":  {Form: FormBall, Color: "red"},
			"blueBall": {Form: FormBall, Color: "blue"},
			"redBrick": {Form: FormBrick, Color: "red"},
			"largeRed": {Form: FormBrick, Color: "red", Size: SizeLarge},
			"smallRed": {Form: FormBrick, Color: "red", Size: SizeSmall},
		},
	}

	testCases := []struct {
		name       string
		label      string
		candidates []string
		want       string
	}{
		{name: "form alone disambiguates", label: "redBall", candidates: []string{"redBall", "redBrick"}, want: "ball"},
		{name: "needs color to disambiguate", label: "redBall", candidates: []string{"redBall", "blueBall"}, want: "red ball"},
		{name: "needs size to disambiguate among same color and form", label: "largeRed", candidates: []string{"largeRed", "smallRed"}, want: "large brick"},
		{name: "single candidate skips uniqueness check", label: "redBall", candidates: []string{"redBall"}, want: "red ball"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.want, MinimalDescription(w, tc.label, tc.candidates))
		})
	}
}
