package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"techstartups/internal/domain"
)

// rawID decodes whatever the ingestion bot stored for a 64-bit id: int32,
// int64, double, decimal, string, or a {low, high} document.
type rawID struct {
	domain.RawChannelID
}

func (r *rawID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	r.RawChannelID = decodeID(bson.RawValue{Type: t, Value: data})
	return nil
}

func decodeID(v bson.RawValue) domain.RawChannelID {
	switch v.Type {
	case bsontype.Int32:
		if n, ok := v.Int32OK(); ok {
			return domain.NumberID(int64(n))
		}
	case bsontype.Int64:
		if n, ok := v.Int64OK(); ok {
			return domain.NumberID(n)
		}
	case bsontype.Double:
		if f, ok := v.DoubleOK(); ok {
			return domain.FloatID(f)
		}
	case bsontype.Decimal128:
		if d, ok := v.Decimal128OK(); ok {
			return domain.TextID(d.String())
		}
	case bsontype.String:
		if s, ok := v.StringValueOK(); ok {
			return domain.TextID(s)
		}
	case bsontype.EmbeddedDocument:
		doc, ok := v.DocumentOK()
		if !ok {
			break
		}
		low, okLow := word(doc.Lookup("low"))
		high, okHigh := word(doc.Lookup("high"))
		if okLow && okHigh {
			return domain.SplitID(low, high)
		}
	}
	return domain.RawChannelID{}
}

func word(v bson.RawValue) (int32, bool) {
	switch v.Type {
	case bsontype.Int32:
		return v.Int32OK()
	case bsontype.Int64:
		n, ok := v.Int64OK()
		return int32(n), ok
	case bsontype.Double:
		f, ok := v.DoubleOK()
		return int32(int64(f)), ok
	}
	return 0, false
}

// channelIDFilter matches a stored id in numeric, split or decimal text form.
func channelIDFilter(id domain.ChannelID) bson.D {
	low, high := id.Split()
	return bson.D{{Key: "$in", Value: bson.A{
		int64(id),
		bson.D{{Key: "low", Value: low}, {Key: "high", Value: high}},
		id.String(),
	}}}
}
