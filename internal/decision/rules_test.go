package decision

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"veritas/contracts/verification"
)

type RulesTestSuite struct {
	suite.Suite
}

func TestRulesSuite(t *testing.T) {
	suite.Run(t, new(RulesTestSuite))
}

func strp(s string) *string { return &s }

func validAadhaarFields() verification.DocumentFields {
	return verification.DocumentFields{
		DocType:       verification.DocTypeAadhaar,
		Name:          strp("Ravi Kumar"),
		AadhaarNumber: strp("1234 5678 9012"),
	}
}

func validPANFields() verification.DocumentFields {
	return verification.DocumentFields{
		DocType:   verification.DocTypePAN,
		Name:      strp("Ravi Kumar Sharma"),
		PANNumber: strp("ABCDE1234F"),
	}
}

func passingEvidence() gatheredEvidence {
	return gatheredEvidence{
		aadhaar: validAadhaarFields(),
		pan:     validPANFields(),
		face:    verification.FaceMatch{Verified: true, Confidence: 85},
	}
}

func (s *RulesTestSuite) TestNameSimilarity() {
	s.Run("partial overlap", func() {
		// {ravi, kumar} over {ravi, kumar, sharma}
		s.Equal(67, NameSimilarity("ravi kumar", "ravi kumar sharma"))
	})

	s.Run("symmetric", func() {
		pairs := [][2]string{
			{"ravi kumar", "ravi kumar sharma"},
			{"john doe", "jane doe"},
			{"a b c", "d e f"},
			{"priya", "priya"},
		}
		for _, p := range pairs {
			s.Equal(NameSimilarity(p[0], p[1]), NameSimilarity(p[1], p[0]))
		}
	})

	s.Run("identical names score 100", func() {
		s.Equal(100, NameSimilarity("ravi kumar", "ravi kumar"))
	})

	s.Run("empty side scores 0", func() {
		s.Equal(0, NameSimilarity("", "ravi kumar"))
		s.Equal(0, NameSimilarity("ravi kumar", ""))
		s.Equal(0, NameSimilarity("", ""))
	})

	s.Run("disjoint names score 0", func() {
		s.Equal(0, NameSimilarity("john doe", "priya sharma"))
	})
}

func (s *RulesTestSuite) TestCrossCheckNames() {
	s.Run("document pair outranks onboarding name", func() {
		check := crossCheckNames(strp("Ravi Kumar"), strp("ravi kumar sharma"), "someone else entirely")
		s.True(check.Match)
		s.Equal(67, check.SimilarityPct)
	})

	s.Run("falls back to onboarding name when pan name missing", func() {
		check := crossCheckNames(strp("Ravi Kumar"), nil, "Ravi Kumar")
		s.True(check.Match)
		s.Equal(100, check.SimilarityPct)
	})

	s.Run("no usable names defaults to match with zero similarity", func() {
		check := crossCheckNames(nil, nil, "")
		s.True(check.Match)
		s.Zero(check.SimilarityPct)
		s.Nil(check.AadhaarName)
		s.Nil(check.PANName)
	})

	s.Run("below threshold rejects", func() {
		check := crossCheckNames(strp("John Doe"), strp("Priya Sharma"), "")
		s.False(check.Match)
		s.Zero(check.SimilarityPct)
	})

	s.Run("names are exposed lowercased", func() {
		check := crossCheckNames(strp("Ravi Kumar"), strp("RAVI KUMAR"), "")
		s.Require().NotNil(check.AadhaarName)
		s.Equal("ravi kumar", *check.AadhaarName)
		s.Require().NotNil(check.PANName)
		s.Equal("ravi kumar", *check.PANName)
	})
}

func (s *RulesTestSuite) TestSlotValidity() {
	s.Run("aadhaar slot requires type and format", func() {
		s.True(aadhaarSlotValid(validAadhaarFields()))

		wrongType := validAadhaarFields()
		wrongType.DocType = verification.DocTypeUnknown
		s.False(aadhaarSlotValid(wrongType))

		noNumber := validAadhaarFields()
		noNumber.AadhaarNumber = nil
		s.False(aadhaarSlotValid(noNumber))
	})

	s.Run("pan slot tolerates unknown type", func() {
		fields := validPANFields()
		fields.DocType = verification.DocTypeUnknown
		s.True(panSlotValid(fields))
	})

	s.Run("pan slot tolerates missing number", func() {
		fields := validPANFields()
		fields.PANNumber = nil
		s.True(panSlotValid(fields))
	})

	s.Run("pan slot rejects malformed number", func() {
		fields := validPANFields()
		fields.PANNumber = strp("12345ABCDE")
		s.False(panSlotValid(fields))
	})

	s.Run("pan slot rejects aadhaar document", func() {
		fields := validPANFields()
		fields.DocType = verification.DocTypeAadhaar
		s.False(panSlotValid(fields))
	})
}

func (s *RulesTestSuite) TestFaceLeniency() {
	s.Run("signal error is waved through with placeholder confidence", func() {
		match := applyFaceLeniency(verification.FaceMatch{
			Verified: false,
			Error:    "no face detected",
		})
		s.True(match.Verified)
		s.Equal(70, match.Confidence)
		s.Equal("no face detected", match.Error)
	})

	s.Run("clean verdict passes through unchanged", func() {
		in := verification.FaceMatch{Verified: false, Confidence: 12, Model: "Facenet512"}
		s.Equal(in, applyFaceLeniency(in))
	})
}

func (s *RulesTestSuite) TestDecide() {
	s.Run("all gates passing approves", func() {
		result := decide(passingEvidence(), "")
		s.True(result.Approved)
		s.True(result.Summary.AadhaarValid)
		s.True(result.Summary.PANValid)
		s.True(result.Summary.NamesMatch)
		s.True(result.Summary.FaceMatches)
	})

	s.Run("any single failed gate rejects", func() {
		s.Run("aadhaar invalid", func() {
			ev := passingEvidence()
			ev.aadhaar.AadhaarNumber = nil
			s.False(decide(ev, "").Approved)
		})

		s.Run("pan invalid", func() {
			ev := passingEvidence()
			ev.pan.PANNumber = strp("NOTAPAN123")
			s.False(decide(ev, "").Approved)
		})

		s.Run("name mismatch", func() {
			ev := passingEvidence()
			ev.pan.Name = strp("Completely Different Person")
			s.False(decide(ev, "").Approved)
		})

		s.Run("face mismatch", func() {
			ev := passingEvidence()
			ev.face = verification.FaceMatch{Verified: false, Confidence: 10}
			s.False(decide(ev, "").Approved)
		})
	})

	s.Run("face signal error still approves via leniency", func() {
		ev := passingEvidence()
		ev.face = verification.FaceMatch{Verified: false, Error: "no face detected"}

		result := decide(ev, "")
		s.True(result.Approved)
		s.True(result.Checks.FaceMatch.Verified)
		s.Equal(70, result.Checks.FaceMatch.Confidence)
	})

	s.Run("breakdown retains the input field sets", func() {
		ev := passingEvidence()
		result := decide(ev, "")

		s.Equal(ev.aadhaar, result.Checks.Aadhaar.Fields)
		s.Equal(ev.pan, result.Checks.PAN.Fields)
	})

	s.Run("inputs are not mutated", func() {
		ev := passingEvidence()
		before := *ev.aadhaar.Name
		decide(ev, "Someone Else")
		s.Equal(before, *ev.aadhaar.Name)
	})
}
