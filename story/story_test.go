package story_test

import (
	"testing"

	"github.com/plus3/welltris/story"
	"github.com/stretchr/testify/assert"
)

func TestDefaultSegments(t *testing.T) {
	segments := story.DefaultSegments()
	assert.NoError(t, story.Validate(segments))

	assert.Len(t, segments, 4)
	assert.Equal(t, []int{25, 50, 75, 0}, []int{
		segments[0].OpponentHP, segments[1].OpponentHP, segments[2].OpponentHP, segments[3].OpponentHP,
	})
	assert.Equal(t, 90.0, segments[0].TimeLimit)
	assert.Equal(t, 200.0, segments[2].TimeLimit)
	assert.Len(t, segments[2].Lines, 3)
	assert.True(t, segments[3].Epilogue())
	assert.False(t, segments[0].Epilogue())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		segments []story.Segment
		wantErr  bool
	}{
		{name: "empty", segments: nil, wantErr: true},
		{name: "no lines", segments: []story.Segment{{OpponentHP: 1, TimeLimit: 1}}, wantErr: true},
		{name: "match without time", segments: []story.Segment{{Lines: []string{"hi"}, OpponentHP: 10}}, wantErr: true},
		{name: "epilogue only", segments: []story.Segment{{Lines: []string{"bye"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := story.Validate(tt.segments)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCampaign(t *testing.T) {
	c := story.NewCampaign(story.DefaultSegments())
	assert.Equal(t, 25, c.Current().OpponentHP)
	assert.False(t, c.Finished())

	assert.True(t, c.Advance())
	assert.True(t, c.Advance())
	assert.True(t, c.Advance())
	assert.True(t, c.Finished())
	assert.True(t, c.Current().Epilogue())
	assert.False(t, c.Advance())
	assert.Equal(t, 3, c.Index())

	c.Reset()
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 4, c.Len())

	assert.Nil(t, story.NewCampaign(nil).Current())
}
