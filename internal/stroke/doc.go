// Package stroke converts stroked polylines into fillable polygons.
//
// A stroke is emitted as a union of pieces: one quad per segment, one
// wedge per join and one piece per cap. Every piece is normalized to the
// same orientation so that filling the result with the non-zero winding
// rule yields the union without holes where pieces overlap.
package stroke
