package fingerprint

import (
	"image"
	"math"
	"math/rand"

	"github.com/arikiri/imagedup/internal/imgproc"
	"github.com/arikiri/imagedup/pkg/api"
)

const (
	orbFASTThreshold  = 20
	orbMaxKeypoints   = 500
	orbMaxEncoded     = 50
	orbRadius         = 3
	orbOrientRadius   = 7
	orbDescriptorBits = 256
	orbPatternSeed    = 42
	orbPatternScale   = 15.0 * 0.04
)

type keypoint struct {
	x, y  int
	score float64
}

type orientedKeypoint struct {
	keypoint
	angle float64
}

// Descriptor is a single ORB keypoint plus its 256-bit rBRIEF descriptor.
type Descriptor struct {
	X, Y  uint32
	Angle float32
	Data  [32]byte
}

// bresenhamCirclePattern returns the 16 fixed (dx,dy) offsets of the radius-3
// FAST ring, in ring order. Hardcoded rather than recomputed via
// trigonometry.
func bresenhamCirclePattern() [16][2]int {
	return [16][2]int{
		{0, -3}, {1, -3}, {2, -2}, {3, -1},
		{3, 0}, {3, 1}, {2, 2}, {1, 3},
		{0, 3}, {-1, 3}, {-2, 2}, {-3, 1},
		{-3, 0}, {-3, -1}, {-2, -2}, {-1, -3},
	}
}

// ComputeORB detects FAST keypoints, assigns each an orientation from local
// image moments, computes a rotation-invariant rBRIEF descriptor, and
// encodes the result as a length-prefixed binary payload, Base64-encoded.
func ComputeORB(img image.Image) (api.HashResult, error) {
	if err := imgproc.CheckMinDimension(img); err != nil {
		return api.HashResult{}, err
	}
	gray := imgproc.ToGrayscale(img)

	keypoints := detectFAST(gray, orbFASTThreshold, orbMaxKeypoints)
	if len(keypoints) == 0 {
		return api.HashResult{}, api.NewError(api.NoFeatures, "no keypoints detected")
	}

	oriented := computeOrientations(gray, keypoints)
	descriptors := computeBRIEF(gray, oriented)

	encoded, err := EncodeORB(descriptors)
	if err != nil {
		return api.HashResult{}, err
	}

	b := img.Bounds()
	return api.HashResult{Hash: encoded, Width: uint32(b.Dx()), Height: uint32(b.Dy())}, nil
}

func detectFAST(gray *image.Gray, threshold uint8, maxPoints int) []keypoint {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	pattern := bresenhamCirclePattern()

	px := func(x, y int) uint8 { return gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y }

	var keypoints []keypoint
	for y := orbRadius; y < h-orbRadius; y++ {
		for x := orbRadius; x < w-orbRadius; x++ {
			center := int(px(x, y))

			top := int(px(x, y-orbRadius))
			right := int(px(x+orbRadius, y))
			bottom := int(px(x, y+orbRadius))
			left := int(px(x-orbRadius, y))

			brighterCount, darkerCount := 0, 0
			for _, v := range []int{top, right, bottom, left} {
				if v > center+int(threshold) {
					brighterCount++
				}
				if v < center-int(threshold) {
					darkerCount++
				}
			}
			if brighterCount < 3 && darkerCount < 3 {
				continue
			}

			consecutiveBrighter, consecutiveDarker, maxConsecutive := 0, 0, 0
			isCorner := false
			for _, off := range pattern {
				dx, dy := off[0], off[1]
				ppx, ppy := x+dx, y+dy
				if ppx < 0 || ppx >= w || ppy < 0 || ppy >= h {
					continue
				}
				v := int(px(ppx, ppy))
				switch {
				case v > center+int(threshold):
					consecutiveBrighter++
					consecutiveDarker = 0
				case v < center-int(threshold):
					consecutiveDarker++
					consecutiveBrighter = 0
				default:
					consecutiveBrighter = 0
					consecutiveDarker = 0
				}
				if consecutiveBrighter > maxConsecutive {
					maxConsecutive = consecutiveBrighter
				}
				if consecutiveDarker > maxConsecutive {
					maxConsecutive = consecutiveDarker
				}
				if maxConsecutive >= 9 {
					isCorner = true
					break
				}
			}
			if !isCorner {
				continue
			}

			var score float64
			for _, off := range pattern {
				ppx, ppy := x+off[0], y+off[1]
				if ppx < 0 || ppx >= w || ppy < 0 || ppy >= h {
					continue
				}
				diff := math.Abs(float64(int(px(ppx, ppy)) - center))
				score += diff
			}
			keypoints = append(keypoints, keypoint{x: x, y: y, score: score / 16.0})
		}
	}

	if len(keypoints) > maxPoints {
		sortKeypointsByScoreDesc(keypoints)
		keypoints = keypoints[:maxPoints]
	}
	return keypoints
}

func sortKeypointsByScoreDesc(kps []keypoint) {
	for i := 1; i < len(kps); i++ {
		j := i
		for j > 0 && kps[j-1].score < kps[j].score {
			kps[j-1], kps[j] = kps[j], kps[j-1]
			j--
		}
	}
}

func computeOrientations(gray *image.Gray, keypoints []keypoint) []orientedKeypoint {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]orientedKeypoint, len(keypoints))

	for i, kp := range keypoints {
		minX := kp.x - orbOrientRadius
		if minX < 0 {
			minX = 0
		}
		minY := kp.y - orbOrientRadius
		if minY < 0 {
			minY = 0
		}
		maxX := kp.x + orbOrientRadius
		if maxX > w-1 {
			maxX = w - 1
		}
		maxY := kp.y + orbOrientRadius
		if maxY > h-1 {
			maxY = h - 1
		}

		var m10, m01 float64
		for py := minY; py <= maxY; py++ {
			for ppx := minX; ppx <= maxX; ppx++ {
				dx := ppx - kp.x
				dy := py - kp.y
				if dx*dx+dy*dy > orbOrientRadius*orbOrientRadius {
					continue
				}
				intensity := float64(gray.GrayAt(b.Min.X+ppx, b.Min.Y+py).Y)
				m10 += float64(dx) * intensity
				m01 += float64(dy) * intensity
			}
		}

		out[i] = orientedKeypoint{keypoint: kp, angle: math.Atan2(m01, m10)}
	}
	return out
}

type briefPair struct{ x1, y1, x2, y2 float64 }

// generateBRIEFPattern returns a deterministic, seeded Gaussian sampling
// pattern of 256 point pairs via a Box-Muller transform. This is a
// from-scratch Go PRNG sequence (not bit-identical to any other
// implementation's random stream) but is fixed across every run, which is
// all the descriptor needs: every image is sampled against the same pattern.
func generateBRIEFPattern() [orbDescriptorBits]briefPair {
	rng := rand.New(rand.NewSource(orbPatternSeed))
	var pattern [orbDescriptorBits]briefPair

	next := func() (x, y float64) {
		r := math.Log(float64(rng.Float32())+1e-7) * -2.0
		theta := float64(rng.Float32()) * 2.0 * math.Pi
		x = math.Sqrt(r) * math.Cos(theta) * orbPatternScale
		y = math.Sqrt(r) * math.Sin(theta) * orbPatternScale
		return
	}

	for i := 0; i < orbDescriptorBits; i++ {
		x1, y1 := next()
		x2, y2 := next()
		pattern[i] = briefPair{x1, y1, x2, y2}
	}
	return pattern
}

var briefPattern = generateBRIEFPattern()

func computeBRIEF(gray *image.Gray, keypoints []orientedKeypoint) []Descriptor {
	b := gray.Bounds()
	maxW := b.Dx() - 1
	maxH := b.Dy() - 1

	descriptors := make([]Descriptor, len(keypoints))
	for i, kp := range keypoints {
		d := Descriptor{X: uint32(kp.x), Y: uint32(kp.y), Angle: float32(kp.angle)}
		cosT, sinT := math.Cos(kp.angle), math.Sin(kp.angle)

		for bit := 0; bit < orbDescriptorBits; bit++ {
			p := briefPattern[bit]

			// Canonical rotation: x' = x*cos - y*sin, y' = x*sin + y*cos.
			rx1 := p.x1*cosT - p.y1*sinT
			ry1 := p.y1*cosT + p.x1*sinT
			rx2 := p.x2*cosT - p.y2*sinT
			ry2 := p.y2*cosT + p.x2*sinT

			x1 := int(math.Round(float64(kp.x) + rx1))
			y1 := int(math.Round(float64(kp.y) + ry1))
			x2 := int(math.Round(float64(kp.x) + rx2))
			y2 := int(math.Round(float64(kp.y) + ry2))

			if x1 < 0 || x1 > maxW || y1 < 0 || y1 > maxH ||
				x2 < 0 || x2 > maxW || y2 < 0 || y2 > maxH {
				continue
			}

			val1 := gray.GrayAt(b.Min.X+x1, b.Min.Y+y1).Y
			val2 := gray.GrayAt(b.Min.X+x2, b.Min.Y+y2).Y
			if val1 < val2 {
				d.Data[bit/8] |= 1 << uint(bit%8)
			}
		}
		descriptors[i] = d
	}
	return descriptors
}
