// Package dcmtest writes minimal DICOM Part 10 files for tests.
//
// Files are encoded as explicit VR little endian: a 128 byte preamble, the
// "DICM" magic, a group 0002 meta header with its group length, then the data
// set elements in ascending tag order.
package dcmtest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

const (
	explicitVRLittleEndian = "1.2.840.10008.1.2.1"
	rtPlanStorage          = "1.2.840.10008.5.1.4.1.1.481.5"
	ctImageStorage         = "1.2.840.10008.5.1.4.1.1.2"
)

// Element is a single textual data element.
type Element struct {
	Group   uint16
	Element uint16
	VR      string
	Value   string
}

func SOPClassUID(uid string) Element   { return Element{0x0008, 0x0016, "UI", uid} }
func Modality(m string) Element        { return Element{0x0008, 0x0060, "CS", m} }
func PatientName(name string) Element  { return Element{0x0010, 0x0010, "PN", name} }
func PatientID(id string) Element      { return Element{0x0010, 0x0020, "LO", id} }
func RTPlanLabel(label string) Element { return Element{0x300A, 0x0002, "SH", label} }
func RTPlanName(name string) Element   { return Element{0x300A, 0x0003, "LO", name} }

// RTPlan returns the elements of a plan object.
func RTPlan(patientID, patientName, label, name string) []Element {
	return []Element{
		SOPClassUID(rtPlanStorage),
		Modality("RTPLAN"),
		PatientName(patientName),
		PatientID(patientID),
		RTPlanLabel(label),
		RTPlanName(name),
	}
}

// CTImage returns the elements of an image object without pixel data.
func CTImage(patientID, patientName string) []Element {
	return []Element{
		SOPClassUID(ctImageStorage),
		Modality("CT"),
		PatientName(patientName),
		PatientID(patientID),
	}
}

// Encode serialises elems as a Part 10 file.
func Encode(elems ...Element) []byte {
	sopClass := ctImageStorage
	for _, e := range elems {
		if e.Group == 0x0008 && e.Element == 0x0016 {
			sopClass = e.Value
		}
	}

	var meta bytes.Buffer
	writeElement(&meta, Element{0x0002, 0x0002, "UI", sopClass})
	writeElement(&meta, Element{0x0002, 0x0010, "UI", explicitVRLittleEndian})

	var out bytes.Buffer
	out.Write(make([]byte, 128))
	out.WriteString("DICM")

	// (0002,0000) UL group length
	out.Write([]byte{0x02, 0x00, 0x00, 0x00, 'U', 'L', 0x04, 0x00})
	_ = binary.Write(&out, binary.LittleEndian, uint32(meta.Len()))
	out.Write(meta.Bytes())

	sorted := append([]Element(nil), elems...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Group != sorted[j].Group {
			return sorted[i].Group < sorted[j].Group
		}
		return sorted[i].Element < sorted[j].Element
	})
	for _, e := range sorted {
		writeElement(&out, e)
	}
	return out.Bytes()
}

// WriteFile encodes elems into dir/name and returns the full path.
func WriteFile(t testing.TB, dir, name string, elems ...Element) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Encode(elems...), 0o644); err != nil {
		t.Fatalf("failed to write DICOM fixture %s: %v", path, err)
	}
	return path
}

// WriteTruncatedFile writes elems like WriteFile but drops the last cut bytes,
// leaving a valid header in front of an incomplete data set.
func WriteTruncatedFile(t testing.TB, dir, name string, cut int, elems ...Element) string {
	t.Helper()
	data := Encode(elems...)
	if cut <= 0 || cut >= len(data) {
		t.Fatalf("cannot cut %d bytes from a %d byte fixture", cut, len(data))
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data[:len(data)-cut], 0o644); err != nil {
		t.Fatalf("failed to write DICOM fixture %s: %v", path, err)
	}
	return path
}

func writeElement(buf *bytes.Buffer, e Element) {
	value := []byte(e.Value)
	if len(value)%2 == 1 {
		if e.VR == "UI" {
			value = append(value, 0x00)
		} else {
			value = append(value, ' ')
		}
	}

	_ = binary.Write(buf, binary.LittleEndian, e.Group)
	_ = binary.Write(buf, binary.LittleEndian, e.Element)
	buf.WriteString(e.VR)
	_ = binary.Write(buf, binary.LittleEndian, uint16(len(value)))
	buf.Write(value)
}
