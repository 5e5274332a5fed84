package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadDepots(t *testing.T) {
	in := "\ufeffDepotID,Longitude,Latitude\n1,-74.08,4.60\n2.0,-74.05,4.65\n"
	got, err := ReadDepots(strings.NewReader(in), "Depots.csv")
	if err != nil {
		t.Fatalf("ReadDepots: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 depots, got %d", len(got))
	}
	if got[1].ID != 2 || got[1].Lon != -74.05 || got[1].Lat != 4.65 {
		t.Fatalf("bad depot: %+v", got[1])
	}
}

func TestReadClientsColumnOrderAndCase(t *testing.T) {
	in := "latitude,longitude,product,clientid\n4.61,-74.07,3,17\n"
	got, err := ReadClients(strings.NewReader(in), "Clients.csv")
	if err != nil {
		t.Fatalf("ReadClients: %v", err)
	}
	if len(got) != 1 || got[0].ID != 17 || got[0].Product != 3 || got[0].Lat != 4.61 || got[0].Lon != -74.07 {
		t.Fatalf("bad client: %+v", got)
	}
}

func TestReadClientsMalformedFailsLoad(t *testing.T) {
	in := "ClientID,Product,Longitude,Latitude\n1,2,-74.0,4.6\nx,2,-74.0,4.6\n"
	_, err := ReadClients(strings.NewReader(in), "Clients.csv")
	if err == nil {
		t.Fatal("expected error for malformed id")
	}
	if !strings.Contains(err.Error(), "Clients.csv:3") || !strings.Contains(err.Error(), "ClientID") {
		t.Fatalf("error lacks location: %v", err)
	}
}

func TestReadDepotsRejectsNaN(t *testing.T) {
	in := "DepotID,Longitude,Latitude\n1,NaN,4.6\n"
	if _, err := ReadDepots(strings.NewReader(in), "Depots.csv"); err == nil {
		t.Fatal("expected error for NaN coordinate")
	}
}

func TestReadMissingColumn(t *testing.T) {
	in := "DepotID,Longitude\n1,2\n"
	_, err := ReadDepots(strings.NewReader(in), "Depots.csv")
	if err == nil || !strings.Contains(err.Error(), "Latitude") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestReadRoutes(t *testing.T) {
	in := "Vehículo,Ruta\n1,D1 -> C3 -> C7 -> D1\n2,Sin ruta\n"
	got, err := ReadRoutes(strings.NewReader(in), "reporte_rutas.csv")
	if err != nil {
		t.Fatalf("ReadRoutes: %v", err)
	}
	if len(got) != 2 || got[0].Vehicle != "1" || got[1].Route != "Sin ruta" {
		t.Fatalf("bad routes: %+v", got)
	}
}

func TestAdapterLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return p
	}
	a := Adapter{
		DepotsPath:  write("Depots.csv", "DepotID,Longitude,Latitude\n1,10,20\n"),
		ClientsPath: write("Clients.csv", "ClientID,Product,Longitude,Latitude\n1,1,11,21\n"),
		RoutesPath:  write("routes.csv", "Vehicle,Route\nA,D1 -> C1\n"),
	}
	tables, err := a.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tables.Depots) != 1 || len(tables.Clients) != 1 || len(tables.Routes) != 1 {
		t.Fatalf("unexpected tables: %+v", tables)
	}

	a.ClientsPath = filepath.Join(dir, "missing.csv")
	if _, err := a.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
