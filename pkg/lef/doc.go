// Package lef renders a layout cell as a LEF MACRO.
//
// # Output
//
// [Render] and [Write] produce one macro: CLASS chosen by the cell kind,
// ORIGIN/FOREIGN/SIZE from the bounding box, SYMMETRY X Y, SITE CoreSite for
// standard cells, a PIN block per input/output rectangle and one OBS block
// listing every rectangle, pins included:
//
//	MACRO inv_cell
//	CLASS CORE ;
//		ORIGIN 0 0 ;
//		FOREIGN inv_cell 0 0 ;
//		SIZE 20 BY 40 ;
//		SYMMETRY X Y ;
//		SITE CoreSite ;
//		PIN A
//			DIRECTION INPUT ;
//			USE SIGNAL ;
//			PORT
//				LAYER poly ;
//					RECT 1 5 3 7 ;
//			END
//		END A
//		OBS
//			LAYER poly ;
//				RECT 1 5 3 7 ;
//		END
//	END inv_cell
//
// Every coordinate is (bound -/+ bloat) * general.scale, with the bloat of
// the resolved output layer applied in grid units before scaling.
//
// # Pin Classification
//
// [Classify] checks the lower-cased label against an ordered rule table:
// substrate and body supplies first (vnsub, vpsub, vddsub, vsssub, vddb,
// vssb), then supplies (vdd, pwr), then grounds (gnd, vss). Anything else is
// a signal whose direction follows the rectangle's input/output flags.
// Supply and ground pins of standard cells also get SHAPE ABUTMENT.
package lef
