// Package render converts rendered diagrams between image formats.
//
// DOT source is produced and laid out to SVG by the [dot] subpackage. The
// [ToPDF] and [ToPNG] functions convert that SVG with the external
// rsvg-convert tool from librsvg:
//
//	svg, err := dot.RenderSVG(ctx, src)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// Conversion fails with code UNSUPPORTED when rsvg-convert is not installed;
// [Available] checks for it up front.
//
// [dot]: github.com/matzehuels/sddkit/pkg/render/dot
package render
