package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRuleMatches(t *testing.T) {
	r := Rule{Name: "fee", Keyword: "کارمزد", Field: FieldWithdrawal}

	assert.True(t, r.Matches(Transaction{Description: strPtr("کارمزد انتقال")}))
	assert.True(t, r.Matches(Transaction{Description: strPtr("بابت کارمزد")}))
	assert.False(t, r.Matches(Transaction{Description: strPtr("انتقال از")}))
	assert.False(t, r.Matches(Transaction{Description: strPtr("")}))
	assert.False(t, r.Matches(Transaction{}))
}

func TestRuleMatches_EmptyKeyword(t *testing.T) {
	r := Rule{Name: "any", Field: FieldDeposit}
	assert.False(t, r.Matches(Transaction{Description: strPtr("anything")}))
}

func TestAmountFieldOf(t *testing.T) {
	txn := Transaction{Withdrawal: decimal.NewFromInt(5), Deposit: decimal.NewFromInt(9)}
	assert.True(t, FieldWithdrawal.Of(txn).Equal(decimal.NewFromInt(5)))
	assert.True(t, FieldDeposit.Of(txn).Equal(decimal.NewFromInt(9)))
}

func TestParseAmountField(t *testing.T) {
	f, err := ParseAmountField(" Deposit ")
	require.NoError(t, err)
	assert.Equal(t, FieldDeposit, f)

	_, err = ParseAmountField("balance")
	assert.Error(t, err)
}

func TestDescriptionText(t *testing.T) {
	assert.Equal(t, "", Transaction{}.DescriptionText())
	assert.Equal(t, "x", Transaction{Description: strPtr("x")}.DescriptionText())
}
