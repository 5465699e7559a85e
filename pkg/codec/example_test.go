package codec_test

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ssargent/ypbank/pkg/codec"
)

// ExampleBinaryCodec_basic demonstrates encoding and decoding a binary frame
func ExampleBinaryCodec_basic() {
	bin := codec.NewBinaryCodec()

	records := []codec.Record{{
		TxID:        42,
		Type:        codec.TxDeposit,
		Status:      codec.StatusSuccess,
		ToUserID:    1000,
		Amount:      500,
		Timestamp:   1634000000000,
		Description: "Single record",
	}}

	var buf bytes.Buffer
	if err := bin.Encode(&buf, records); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Encoded %d bytes\n", buf.Len())

	set, err := bin.Decode(&buf)
	if err != nil {
		log.Fatal(err)
	}

	r := set.Records()[0]
	fmt.Printf("TxID: %d\n", r.TxID)
	fmt.Printf("Type: %s\n", r.Type)
	fmt.Printf("Description: %s\n", r.Description)

	// Output:
	// Encoded 67 bytes
	// TxID: 42
	// Type: DEPOSIT
	// Description: Single record
}

// ExampleNewConverter demonstrates converting CSV input to the text format
func ExampleNewConverter() {
	input := "TX_TYPE,STATUS,TO_USER_ID,FROM_USER_ID,TIMESTAMP,DESCRIPTION,TX_ID,AMOUNT\n" +
		"transfer,pending,2,1,1700000000,\"rent, march\",7,1200\n"

	from, err := codec.NewConverter(codec.FormatCSV)
	if err != nil {
		log.Fatal(err)
	}
	to, err := codec.NewConverter(codec.FormatText)
	if err != nil {
		log.Fatal(err)
	}

	set, err := from.Decode(strings.NewReader(input))
	if err != nil {
		log.Fatal(err)
	}
	if err := to.Encode(os.Stdout, set.Records()); err != nil {
		log.Fatal(err)
	}

	// Output:
	// # Record 1 (TRANSFER)
	// TX_TYPE: TRANSFER
	// TO_USER_ID: 2
	// FROM_USER_ID: 1
	// TIMESTAMP: 1700000000
	// DESCRIPTION: "rent, march"
	// TX_ID: 7
	// AMOUNT: 1200
	// STATUS: PENDING
}

// ExampleCSVCodec_errorHandling demonstrates inspecting a column count failure
func ExampleCSVCodec_errorHandling() {
	input := codec.CSVHeader + "\nDEPOSIT,SUCCESS,1,2\n"

	_, err := codec.NewCSVCodec().Decode(strings.NewReader(input))
	fmt.Printf("Decode error: %v\n", err)

	// Output:
	// Decode error: line 2: expected 8 columns, found 4
}
