package chessground

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"io/fs"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/notnil/chess"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/merida/*.svg
var meridaFiles embed.FS

// PieceSet rasterizes SVG piece glyphs at the board's current square size
// and caches the results. Rasterization happens lazily on first draw of each
// (piece, size) pair, so a resize only pays for the pieces actually on the
// board.
type PieceSet struct {
	fsys fs.FS
	dir  string

	mu    sync.Mutex
	cache map[pieceKey]*ebiten.Image
}

type pieceKey struct {
	piece chess.Piece
	size  int
}

// DefaultPieceSet returns the embedded merida set.
func DefaultPieceSet() *PieceSet {
	return &PieceSet{
		fsys:  meridaFiles,
		dir:   "assets/merida",
		cache: make(map[pieceKey]*ebiten.Image),
	}
}

// LoadPieceSet loads a piece set from dir in fsys. The directory must hold
// one SVG per piece, named wK.svg, wQ.svg, ..., bP.svg. All twelve files are
// parsed up front so a broken set fails at load time, not mid-frame.
func LoadPieceSet(fsys fs.FS, dir string) (*PieceSet, error) {
	ps := &PieceSet{
		fsys:  fsys,
		dir:   dir,
		cache: make(map[pieceKey]*ebiten.Image),
	}
	for piece := chess.WhiteKing; piece <= chess.BlackPawn; piece++ {
		name := ps.assetName(piece)
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("chessground: read piece asset %s: %w", name, err)
		}
		if _, err := oksvg.ReadIconStream(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("chessground: parse piece asset %s: %w", name, err)
		}
	}
	return ps, nil
}

// Image returns the piece rasterized to a size x size pixel image.
func (ps *PieceSet) Image(piece chess.Piece, size int) (*ebiten.Image, error) {
	if size < 1 {
		size = 1
	}
	key := pieceKey{piece: piece, size: size}

	ps.mu.Lock()
	img, ok := ps.cache[key]
	ps.mu.Unlock()
	if ok {
		return img, nil
	}

	img, err := ps.rasterize(piece, size)
	if err != nil {
		return nil, err
	}

	ps.mu.Lock()
	ps.cache[key] = img
	ps.mu.Unlock()
	return img, nil
}

func (ps *PieceSet) rasterize(piece chess.Piece, size int) (*ebiten.Image, error) {
	name := ps.assetName(piece)
	data, err := fs.ReadFile(ps.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("chessground: read piece asset %s: %w", name, err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("chessground: parse piece asset %s: %w", name, err)
	}
	if icon.ViewBox.W <= 0 {
		icon.ViewBox.W = float64(size)
	}
	if icon.ViewBox.H <= 0 {
		icon.ViewBox.H = float64(size)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return ebiten.NewImageFromImage(rgba), nil
}

func (ps *PieceSet) assetName(piece chess.Piece) string {
	prefix := "w"
	if piece.Color() == chess.Black {
		prefix = "b"
	}

	var suffix string
	switch piece.Type() {
	case chess.King:
		suffix = "K"
	case chess.Queen:
		suffix = "Q"
	case chess.Rook:
		suffix = "R"
	case chess.Bishop:
		suffix = "B"
	case chess.Knight:
		suffix = "N"
	case chess.Pawn:
		suffix = "P"
	}
	return ps.dir + "/" + prefix + suffix + ".svg"
}
