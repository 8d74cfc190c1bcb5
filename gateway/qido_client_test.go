package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/medicube/radgate/api/gateway"
)

func qidoServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	viper.Set("dcm4chee.baseURL", server.URL)
	viper.Set("dcm4chee.qidoPath", "/dcm4chee-arc/aets/DCM4CHEE/rs")
	viper.Set("dcm4chee.timeout", "5s")
	viper.Set("dcm4chee.username", "admin")
	viper.Set("dcm4chee.password", "secret")
	t.Cleanup(viper.Reset)

	return server
}

func TestQidoClientStudies(t *testing.T) {
	var gotPath, gotQuery, gotAccept string
	var gotBasicAuth bool
	qidoServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		_, _, gotBasicAuth = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"0020000D":{"Value":["1.2.3"]}}]`))
	})

	client := gateway.NewQidoClient()
	items, err := client.Studies(context.Background(), []gateway.Param{
		{Key: "00080060", Value: "CT"},
	})

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "1.2.3", gateway.ExtractStudyUID(items[0]))
	assert.Equal(t, "/dcm4chee-arc/aets/DCM4CHEE/rs/studies", gotPath)
	assert.Equal(t, "00080060=CT", gotQuery)
	assert.Equal(t, "application/json", gotAccept)
	assert.True(t, gotBasicAuth)
}

func TestQidoClientSeriesAndInstancesPaths(t *testing.T) {
	var paths []string
	qidoServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	client := gateway.NewQidoClient()

	items, err := client.Series(context.Background(), "1.2.3", nil)
	assert.NoError(t, err)
	assert.Empty(t, items)

	items, err = client.Instances(context.Background(), "1.2.3", "1.2.3.1", nil)
	assert.NoError(t, err)
	assert.Empty(t, items)

	assert.Equal(t, []string{
		"/dcm4chee-arc/aets/DCM4CHEE/rs/studies/1.2.3/series",
		"/dcm4chee-arc/aets/DCM4CHEE/rs/studies/1.2.3/series/1.2.3.1/instances",
	}, paths)
}

func TestQidoClientErrorStatus(t *testing.T) {
	qidoServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	client := gateway.NewQidoClient()
	_, err := client.Studies(context.Background(), nil)
	assert.Error(t, err)
}
