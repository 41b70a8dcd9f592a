package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"voxelfield/internal/world"
)

const (
	tileWidth    = 32
	tileHeight   = 16
	blockHeight  = 16
	ambientLight = 0.2
)

type blockSprite struct {
	x, y, z int
	def     world.BlockDef
	screenX int
	screenY int
}

// SaveChunkPreview renders an isometric PNG of the chunk's exposed blocks
// into outputDir, named chunk_<x>_<z>.png.
func SaveChunkPreview(chunk *world.Chunk, outputDir string) error {
	if chunk == nil {
		return fmt.Errorf("chunk is nil")
	}

	size := chunk.Size()
	height := chunk.Height()
	width := (size+size)*tileWidth/2 + tileWidth
	imgHeight := (size+size)*tileHeight/2 + height*blockHeight + tileHeight
	img := image.NewNRGBA(image.Rect(0, 0, width, imgHeight))

	background := color.NRGBA{R: 10, G: 10, B: 18, A: 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	sprites := collectSprites(chunk)

	// Painter's order: back to front, bottom to top.
	sort.Slice(sprites, func(i, j int) bool {
		si, sj := sprites[i], sprites[j]
		if si.screenY != sj.screenY {
			return si.screenY < sj.screenY
		}
		if si.screenX != sj.screenX {
			return si.screenX < sj.screenX
		}
		if si.y != sj.y {
			return si.y < sj.y
		}
		if si.x != sj.x {
			return si.x < sj.x
		}
		return si.z < sj.z
	})

	offsetX := size * tileWidth / 2
	offsetY := height * blockHeight

	for _, s := range sprites {
		renderSprite(img, offsetX+s.screenX, offsetY+s.screenY, s.def)
	}

	if outputDir == "" {
		return fmt.Errorf("output directory is empty")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create preview dir: %w", err)
	}

	file, err := os.Create(previewPath(outputDir, chunk.Coord))
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}

func previewPath(outputDir string, coord world.ChunkCoord) string {
	return filepath.Join(outputDir, fmt.Sprintf("chunk_%d_%d.png", coord.X, coord.Z))
}

// collectSprites gathers every block with at least one face open to air;
// fully buried blocks can never be seen and are skipped.
func collectSprites(chunk *world.Chunk) []blockSprite {
	size := chunk.Size()
	estimated := size * size * 4
	sprites := make([]blockSprite, 0, estimated)
	chunk.ForEachBlock(func(x, y, z int, t world.BlockType) bool {
		if buried(chunk, x, y, z) {
			return true
		}
		sprites = append(sprites, blockSprite{
			x: x, y: y, z: z,
			def:     world.DefOf(t),
			screenX: (x - z) * tileWidth / 2,
			screenY: (x+z)*tileHeight/2 - y*blockHeight,
		})
		return true
	})
	return sprites
}

func buried(chunk *world.Chunk, x, y, z int) bool {
	for _, d := range [6][3]int{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	} {
		n := chunk.TypeAt(x+d[0], y+d[1], z+d[2])
		if n == world.BlockAir || world.DefOf(n).Transparent {
			return false
		}
	}
	return true
}

func renderSprite(img *image.NRGBA, baseX, baseY int, def world.BlockDef) {
	top := shade(def.Top, ambientLight+0.6)
	left := shade(def.Side, ambientLight+0.35)
	right := shade(def.Side, ambientLight+0.2)

	topFace := []image.Point{
		{X: baseX, Y: baseY - blockHeight},
		{X: baseX + tileWidth/2, Y: baseY - blockHeight + tileHeight/2},
		{X: baseX, Y: baseY - blockHeight + tileHeight},
		{X: baseX - tileWidth/2, Y: baseY - blockHeight + tileHeight/2},
	}
	leftFace := []image.Point{
		{X: baseX - tileWidth/2, Y: baseY - blockHeight + tileHeight/2},
		{X: baseX, Y: baseY - blockHeight + tileHeight},
		{X: baseX, Y: baseY + tileHeight},
		{X: baseX - tileWidth/2, Y: baseY + tileHeight/2},
	}
	rightFace := []image.Point{
		{X: baseX + tileWidth/2, Y: baseY - blockHeight + tileHeight/2},
		{X: baseX, Y: baseY - blockHeight + tileHeight},
		{X: baseX, Y: baseY + tileHeight},
		{X: baseX + tileWidth/2, Y: baseY + tileHeight/2},
	}

	fillPolygon(img, leftFace, left)
	fillPolygon(img, rightFace, right)
	fillPolygon(img, topFace, top)
}

// shade parses a hex face color and scales its brightness by factor.
func shade(hex string, factor float64) color.NRGBA {
	base, err := colorful.Hex(hex)
	if err != nil {
		base = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	shaded := colorful.Color{R: base.R * factor, G: base.G * factor, B: base.B * factor}
	r, g, b := shaded.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func fillPolygon(img *image.NRGBA, pts []image.Point, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	minY := pts[0].Y
	maxY := pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	bounds := img.Bounds()
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxY > bounds.Max.Y-1 {
		maxY = bounds.Max.Y - 1
	}
	tmp := make([]int, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		tmp = tmp[:0]
		for i := range pts {
			j := (i + 1) % len(pts)
			x1, y1 := pts[i].X, pts[i].Y
			x2, y2 := pts[j].X, pts[j].Y
			if y1 == y2 {
				continue
			}
			lo, hi := y1, y2
			if lo > hi {
				lo, hi = hi, lo
			}
			if y < lo || y >= hi {
				continue
			}
			tmp = append(tmp, x1+(y-y1)*(x2-x1)/(y2-y1))
		}
		if len(tmp) < 2 {
			continue
		}
		sort.Ints(tmp)
		for i := 0; i+1 < len(tmp); i += 2 {
			xStart := tmp[i]
			xEnd := tmp[i+1]
			if xEnd < bounds.Min.X || xStart >= bounds.Max.X {
				continue
			}
			if xStart < bounds.Min.X {
				xStart = bounds.Min.X
			}
			if xEnd > bounds.Max.X-1 {
				xEnd = bounds.Max.X - 1
			}
			for x := xStart; x <= xEnd; x++ {
				idx := (y-bounds.Min.Y)*img.Stride + (x-bounds.Min.X)*4
				img.Pix[idx] = col.R
				img.Pix[idx+1] = col.G
				img.Pix[idx+2] = col.B
				img.Pix[idx+3] = col.A
			}
		}
	}
}
