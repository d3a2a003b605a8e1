package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/antojopicante/pedidos/internal/catalog"
	"github.com/antojopicante/pedidos/internal/order"
)

// maxBodyBytes bounds request bodies; every payload here is tiny.
const maxBodyBytes = 64 << 10

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	if len(data) > maxBodyBytes {
		return nil, errors.New("request body too large")
	}
	return data, nil
}

func decodeToggle(data []byte) (productID string, err error) {
	d := jx.DecodeBytes(data)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "productId":
			v, err := d.Str()
			if err != nil {
				return err
			}
			productID = v
			return nil
		default:
			return d.Skip()
		}
	})
	if err == nil && productID == "" {
		err = errors.New("productId is required")
	}
	return productID, err
}

func decodeQty(data []byte) (qty int, err error) {
	seen := false
	d := jx.DecodeBytes(data)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "qty":
			v, err := d.Int()
			if err != nil {
				return err
			}
			qty, seen = v, true
			return nil
		default:
			return d.Skip()
		}
	})
	if err == nil && !seen {
		err = errors.New("qty is required")
	}
	return qty, err
}

// decodePatch reads a partial item configuration. Absent fields stay nil in
// the patch; an explicit null clears the field.
func decodePatch(data []byte) (order.Patch, error) {
	var patch order.Patch
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "version":
			v, err := optStr(d)
			if err != nil {
				return err
			}
			version := catalog.Version(v)
			if version != "" && !catalog.KnownVersion(version) {
				return errors.Errorf("unknown version %q", v)
			}
			patch.Version = &version
			return nil
		case "size":
			v, err := optStr(d)
			if err != nil {
				return err
			}
			size := catalog.Size(v)
			if size != "" && !catalog.KnownSize(size) {
				return errors.Errorf("unknown size %q", v)
			}
			patch.Size = &size
			return nil
		case "toppingIds":
			ids := []string{}
			if err := d.Arr(func(d *jx.Decoder) error {
				id, err := d.Str()
				if err != nil {
					return err
				}
				ids = append(ids, id)
				return nil
			}); err != nil {
				return err
			}
			patch.ToppingIDs = ids
			return nil
		case "extrasQty":
			quantities := map[string]int{}
			if err := d.Obj(func(d *jx.Decoder, id string) error {
				qty, err := d.Int()
				if err != nil {
					return err
				}
				quantities[id] = qty
				return nil
			}); err != nil {
				return err
			}
			patch.ExtrasQty = quantities
			return nil
		default:
			return d.Skip()
		}
	})
	return patch, err
}

type customerPayload struct {
	Name      string
	Phone     string
	Service   string
	ZoneID    string
	Address   string
	Reference string
	Payment   string
	Comments  string
}

func decodeCustomer(data []byte) (customerPayload, error) {
	var p customerPayload
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var dst *string
		switch key {
		case "name":
			dst = &p.Name
		case "phone":
			dst = &p.Phone
		case "service":
			dst = &p.Service
		case "zoneId":
			dst = &p.ZoneID
		case "address":
			dst = &p.Address
		case "reference":
			dst = &p.Reference
		case "payment":
			dst = &p.Payment
		case "comments":
			dst = &p.Comments
		default:
			return d.Skip()
		}
		v, err := optStr(d)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	})
	return p, err
}

// optStr reads a string or null (as empty).
func optStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}
	return d.Str()
}
