package filestore

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// Τα subscribers και τα reports μένουν σε απλά JSON αρχεία κάτω από το data/.
// Ο φάκελος αλλάζει με το DATA_DIR.
var baseDir = "data"

// Init φτιάχνει τον φάκελο δεδομένων αν δεν υπάρχει
func Init(dir string) error {
	if dir != "" {
		baseDir = dir
	}
	return os.MkdirAll(baseDir, 0o755)
}

// Path επιστρέφει το πλήρες path ενός αρχείου δεδομένων
func Path(name string) string {
	return filepath.Join(baseDir, name)
}

// Load διαβάζει ένα JSON αρχείο μέσα στο dest. Αν λείπει το αρχείο ή είναι
// χαλασμένο, το dest μένει όπως είναι (άδεια λίστα) και απλά γράφουμε log.
func Load(name string, dest any) error {
	raw, err := os.ReadFile(Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("filestore: %s is not valid JSON, starting with empty data: %v", name, err)
		return nil
	}
	return nil
}

// Save γράφει την τιμή σαν indented JSON
func Save(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(name), raw, 0o644)
}
