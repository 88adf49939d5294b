package corpus

import (
	"errors"
	"strings"
	"testing"
)

const sampleCorpus = `reg_id,full_text,wordcount,LastAmendedDate,repealed
reg-001,"the licensee shall comply.",4,2018-1-5,no
reg-002,"repealed text",2,2017-3-9,yes
reg-003,"short",1,2016-12-1,no
`

func TestLoad_ParsesAllRows(t *testing.T) {
	docs, err := Load(strings.NewReader(sampleCorpus))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	if docs[0].ID != "reg-001" {
		t.Errorf("expected id %q, got %q", "reg-001", docs[0].ID)
	}
	if docs[0].WordCount != 4 {
		t.Errorf("expected word count 4, got %d", docs[0].WordCount)
	}
	if docs[0].RawDate != "2018-1-5" {
		t.Errorf("expected raw date %q, got %q", "2018-1-5", docs[0].RawDate)
	}
	if docs[0].Repealed {
		t.Error("reg-001 should not be repealed")
	}
	if !docs[1].Repealed {
		t.Error("reg-002 should be repealed")
	}
}

func TestLoad_HeaderCaseInsensitive(t *testing.T) {
	input := "REG_ID,FULL_TEXT,WordCount,lastamendeddate,Repealed\nr1,text here,2,2018-1-1,no\n"
	docs, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "r1" {
		t.Fatalf("expected one document r1, got %+v", docs)
	}
}

func TestLoad_FloatWordCount(t *testing.T) {
	input := "reg_id,full_text,wordcount,LastAmendedDate,repealed\nr1,text here,1204.0,2018-1-1,no\n"
	docs, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].WordCount != 1204 {
		t.Errorf("expected word count 1204, got %d", docs[0].WordCount)
	}
}

func TestLoad_BadWordCountIsFormatError(t *testing.T) {
	input := "reg_id,full_text,wordcount,LastAmendedDate,repealed\nr1,text here,lots,2018-1-1,no\n"
	_, err := Load(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for unparseable word count")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %T: %v", err, err)
	}
	if fe.ID != "r1" || fe.Field != "wordcount" {
		t.Errorf("expected error naming r1/wordcount, got %q/%q", fe.ID, fe.Field)
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	input := "reg_id,full_text,LastAmendedDate,repealed\nr1,text,2018-1-1,no\n"
	_, err := Load(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for missing wordcount column")
	}
	if !strings.Contains(err.Error(), "wordcount") {
		t.Errorf("expected error to name the missing column, got %v", err)
	}
}

func TestLoad_EmptyID(t *testing.T) {
	input := "reg_id,full_text,wordcount,LastAmendedDate,repealed\n,text,2,2018-1-1,no\n"
	_, err := Load(strings.NewReader(input))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError for empty reg_id, got %v", err)
	}
}
