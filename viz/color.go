package viz

import (
	"math"
	"strconv"
)

// RGB is a color with 8-bit components.
type RGB struct {
	R, G, B uint8
}

// CSS returns the canvas fillStyle/strokeStyle form of the color.
func (c RGB) CSS() string {
	return "rgb(" + strconv.Itoa(int(c.R)) + "," +
		strconv.Itoa(int(c.G)) + "," + strconv.Itoa(int(c.B)) + ")"
}

// HSLToRGB converts hue/saturation/lightness (each nominally in [0,1], hue
// taken modulo 1) to an RGB color.
func HSLToRGB(h, s, l float64) RGB {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}

	if s == 0 {
		v := channelByte(l)
		return RGB{v, v, v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: channelByte(hueChannel(p, q, h+1.0/3)),
		G: channelByte(hueChannel(p, q, h)),
		B: channelByte(hueChannel(p, q, h-1.0/3)),
	}
}

func hueChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func channelByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
