// Package layout provides the in-memory geometry model of one layout macro
// and the reader for the rectangle description format.
//
// # Model
//
// A [Cell] has a name, a [Kind] inferred from its file name, a bounding box
// and an ordered list of [Rect]s. Each Rect carries a label, an abstract
// layer tag (resolved to output layers by package layers), integer bounds in
// layout grid units, a free-form hint, and input/output flags. A Rect with
// neither flag set is an obstruction or fill shape rather than a pin.
//
// Cells and Rects are never modified after [Parse] returns them.
//
// # Input Format
//
// One whitespace-delimited record per line:
//
//	bbox   <xmin> <ymin> <xmax> <ymax>
//	rect    <label> <layer> <xmin> <ymin> <xmax> <ymax> [hint]
//	inrect  <label> <layer> <xmin> <ymin> <xmax> <ymax> [hint]
//	outrect <label> <layer> <xmin> <ymin> <xmax> <ymax> [hint]
//
// inrect marks an input pin, outrect an output pin. Any other leading token
// produces a plain rectangle. Without a bbox record the bounding box is
// (0,0,1,1).
package layout
