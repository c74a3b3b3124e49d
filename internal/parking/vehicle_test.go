package parking

import "testing"

func TestNewVehicle(t *testing.T) {
	regNumber := "KA01HH1234"
	color := "White"

	vehicle := NewVehicle(regNumber, color)

	if vehicle.RegistrationNumber != regNumber {
		t.Errorf("Expected registration number %s, got %s", regNumber, vehicle.RegistrationNumber)
	}

	if vehicle.Color != "white" {
		t.Errorf("Expected normalized color white, got %s", vehicle.Color)
	}
}

func TestVehicleRegistrationKeepsCase(t *testing.T) {
	vehicle := NewVehicle("ka01Hh1234", "RED")

	if vehicle.RegistrationNumber != "ka01Hh1234" {
		t.Errorf("Expected registration number to keep its case, got %s", vehicle.RegistrationNumber)
	}
}

func TestVehicleDisplayColor(t *testing.T) {
	tests := map[string]string{
		"red":        "Red",
		"RED":        "Red",
		"bLuE":       "Blue",
		"light-blue": "Light-blue",
		"émeraude":   "Émeraude",
		"":           "",
	}

	for color, want := range tests {
		if got := NewVehicle("KA01", color).DisplayColor(); got != want {
			t.Errorf("DisplayColor(%q) = %q, want %q", color, got, want)
		}
	}
}

func TestVehicleIsColor(t *testing.T) {
	vehicle := NewVehicle("KA01", "Red")

	for _, color := range []string{"red", "RED", "Red", "rEd"} {
		if !vehicle.IsColor(color) {
			t.Errorf("Expected %q to match", color)
		}
	}

	if vehicle.IsColor("redd") {
		t.Error("Expected redd not to match")
	}
}
