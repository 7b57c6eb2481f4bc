package widgets

// fitScale returns the largest scale at which a w x h drawing plus margin on
// every side fits inside maxW x maxH. It never returns a non-positive scale.
func fitScale(w, h, maxW, maxH, margin float32) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	scale := (maxW - margin*2) / w
	if sy := (maxH - margin*2) / h; sy < scale {
		scale = sy
	}
	if scale <= 0 {
		return 1
	}
	return scale
}
