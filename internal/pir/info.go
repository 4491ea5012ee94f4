package pir

// InfoRowLen is the width of the positional info row in the sheet.
const InfoRowLen = 14

// GeneralInfo is the named form of the sheet's 14-field positional info
// row. Field order on the wire is defined solely by InfoFromRow and Row,
// the single serialization boundary for the positional coupling.
type GeneralInfo struct {
	Customer      string
	AcReg         string
	WoNo          string
	PartDesc      string
	PartNo        string
	SerialNo      string
	Qty           string
	DateReceived  string
	Reason        string
	AdStatus      string
	AttachedParts string
	MissingParts  string
	ModStatus     string
	DocID         string
}

// InfoFromRow builds a GeneralInfo from a positional row. Short rows are
// padded with empty fields; extra fields are ignored. DateReceived is
// normalized to the calendar form on the way in.
func InfoFromRow(row []string) GeneralInfo {
	at := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	return GeneralInfo{
		Customer:      at(0),
		AcReg:         at(1),
		WoNo:          at(2),
		PartDesc:      at(3),
		PartNo:        at(4),
		SerialNo:      at(5),
		Qty:           at(6),
		DateReceived:  NormalizeDate(at(7)),
		Reason:        at(8),
		AdStatus:      at(9),
		AttachedParts: at(10),
		MissingParts:  at(11),
		ModStatus:     at(12),
		DocID:         at(13),
	}
}

// Row flattens the info back to its positional wire form.
func (g GeneralInfo) Row() []string {
	return []string{
		g.Customer,
		g.AcReg,
		g.WoNo,
		g.PartDesc,
		g.PartNo,
		g.SerialNo,
		g.Qty,
		g.DateReceived,
		g.Reason,
		g.AdStatus,
		g.AttachedParts,
		g.MissingParts,
		g.ModStatus,
		g.DocID,
	}
}

// ParentKey returns the key finding labels are derived from.
func (g GeneralInfo) ParentKey() string {
	if g.WoNo == "" {
		return DefaultParentKey
	}
	return g.WoNo
}
